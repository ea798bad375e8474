package cli

import (
	"fmt"
	"strings"

	"github.com/agisilaos/macsearch/internal/config"
)

func (a App) cmdConfig(g globalFlags, args []string) error {
	if len(args) < 2 {
		return newUsageError("config", "usage: macsearch config get <key> | macsearch config set <key> <value>")
	}
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	switch args[0] {
	case "get":
		if len(args) != 2 {
			return newUsageError("config", "usage: macsearch config get <key>")
		}
		val, ok := configGet(cfg, args[1])
		if !ok {
			return unknownConfigKey(args[1])
		}
		switch {
		case g.JSON:
			return writeJSON(map[string]string{"key": args[1], "value": val})
		case g.Plain:
			writePlainKV(args[1], val)
		default:
			fmt.Println(val)
		}
		return nil
	case "set":
		if len(args) != 3 {
			return newUsageError("config", "usage: macsearch config set <key> <value>")
		}
		if _, ok := configGet(cfg, args[1]); !ok {
			return unknownConfigKey(args[1])
		}
		if err := configSet(&cfg, args[1], args[2]); err != nil {
			return newUsageError("config", "%v", err)
		}
		if err := config.Save(cfg); err != nil {
			return newUsageError("config", "%v", err)
		}
		val, _ := configGet(cfg, args[1])
		switch {
		case g.JSON:
			return writeJSON(map[string]string{"ok": "true", "key": args[1], "value": val})
		case g.Plain:
			writePlainKV("ok", "true", "key", args[1], "value", val)
		default:
			fmt.Printf("%s set to %s\n", args[1], val)
		}
		return nil
	default:
		return newUsageError("config", "unknown config action %q", args[0])
	}
}

func unknownConfigKey(key string) error {
	hints := []string{}
	if s := suggestClosest(key, configKeys); s != "" {
		hints = append(hints, "macsearch config get "+s)
	}
	return ExitError{
		Code:  ExitInvalidUsage,
		Err:   fmt.Errorf("unknown key %q (keys: %s)", key, strings.Join(configKeys, ", ")),
		Hints: hints,
	}
}
