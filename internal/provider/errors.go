package provider

import (
	"errors"
	"io"
	"net"
)

var (
	ErrTransient    = errors.New("transient provider failure")
	ErrRateLimited  = errors.New("provider rate limited")
	ErrDecode       = errors.New("malformed provider response")
	ErrInvalidQuery = errors.New("query cannot be encoded as a catalog url")
	ErrClosed       = errors.New("provider closed")
)

func isNetworkTransient(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
