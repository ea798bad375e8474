package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const completionUsage = "usage: macsearch completion <bash|zsh|fish> | macsearch completion path <bash|zsh|fish>"

func (a App) cmdCompletion(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newUsageError("completion", completionUsage)
	}
	if len(args) == 2 && strings.EqualFold(args[0], "path") {
		p, err := completionInstallPath(args[1])
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	}
	if len(args) != 1 {
		return newUsageError("completion", completionUsage)
	}
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletionScript())
	case "zsh":
		fmt.Print(zshCompletionScript())
	case "fish":
		fmt.Print(fishCompletionScript())
	default:
		return newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", args[0])
	}
	return nil
}

func completionInstallPath(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", newExitError(ExitGenericFailure, "cannot resolve user home directory")
	}
	switch strings.ToLower(strings.TrimSpace(shell)) {
	case "zsh":
		return filepath.Join(home, ".zsh", "completions", "_macsearch"), nil
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "macsearch"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "macsearch.fish"), nil
	default:
		return "", newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", shell)
	}
}

func bashCompletionScript() string {
	return `#!/usr/bin/env bash
_macsearch_completions() {
  local cur prev words cword
  _init_completion -n : || return

  local commands="search lookup info home vendor url config doctor completion help version"
  local url_sub="search lookup"
  local config_sub="get set"
  local config_keys="base_url timeout_seconds workers wait_timeout_seconds log_level log_format"

  if [[ ${cword} -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
    return
  fi

  case "${words[1]}" in
    url) COMPREPLY=( $(compgen -W "${url_sub}" -- "${cur}") ) ;;
    config)
      if [[ ${cword} -eq 2 ]]; then
        COMPREPLY=( $(compgen -W "${config_sub}" -- "${cur}") )
      else
        COMPREPLY=( $(compgen -W "${config_keys}" -- "${cur}") )
      fi
      ;;
    search) COMPREPLY=( $(compgen -W "--price" -- "${cur}") ) ;;
    doctor) COMPREPLY=( $(compgen -W "--strict" -- "${cur}") ) ;;
    completion) COMPREPLY=( $(compgen -W "bash zsh fish path" -- "${cur}") ) ;;
  esac
}
complete -F _macsearch_completions macsearch
`
}

func zshCompletionScript() string {
	return `#compdef macsearch
_macsearch() {
  local -a commands
  commands=(
    'search:Search Mac apps by name'
    'lookup:Show details for app ids'
    'info:Show details for app ids'
    'home:Print the store page of an app'
    'vendor:Print the developer website of an app'
    'url:Print catalog request URLs'
    'config:Read or write config'
    'doctor:Run preflight checks'
    'completion:Generate shell completion'
    'help:Show help'
    'version:Show version'
  )

  local -a url_sub
  url_sub=('search' 'lookup')
  local -a config_sub
  config_sub=('get' 'set')

  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi

  case "$words[2]" in
    url) _describe 'url kind' url_sub ;;
    config) _describe 'config action' config_sub ;;
    completion) _values 'shell' bash zsh fish path ;;
  esac
}
_macsearch "$@"
`
}

func fishCompletionScript() string {
	return `complete -c macsearch -f
complete -c macsearch -n '__fish_use_subcommand' -a 'search' -d 'Search Mac apps by name'
complete -c macsearch -n '__fish_use_subcommand' -a 'lookup' -d 'Show details for app ids'
complete -c macsearch -n '__fish_use_subcommand' -a 'info' -d 'Show details for app ids'
complete -c macsearch -n '__fish_use_subcommand' -a 'home' -d 'Print the store page of an app'
complete -c macsearch -n '__fish_use_subcommand' -a 'vendor' -d 'Print the developer website of an app'
complete -c macsearch -n '__fish_use_subcommand' -a 'url' -d 'Print catalog request URLs'
complete -c macsearch -n '__fish_use_subcommand' -a 'config' -d 'Read or write config'
complete -c macsearch -n '__fish_use_subcommand' -a 'doctor' -d 'Run preflight checks'
complete -c macsearch -n '__fish_use_subcommand' -a 'completion' -d 'Generate shell completion'
complete -c macsearch -n '__fish_use_subcommand' -a 'help' -d 'Show help'
complete -c macsearch -n '__fish_use_subcommand' -a 'version' -d 'Show version'

complete -c macsearch -n '__fish_seen_subcommand_from url' -a 'search lookup'
complete -c macsearch -n '__fish_seen_subcommand_from config' -a 'get set'
complete -c macsearch -n '__fish_seen_subcommand_from search' -l price -d 'Show app prices'
complete -c macsearch -n '__fish_seen_subcommand_from doctor' -l strict -d 'Treat warnings as failures'
complete -c macsearch -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish path'
`
}
