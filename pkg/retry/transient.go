package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
)

var transientErrnos = []syscall.Errno{
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	syscall.ECONNABORTED,
	syscall.ETIMEDOUT,
	syscall.EPIPE,
	syscall.ENETUNREACH,
	syscall.EHOSTUNREACH,
}

// Alguns clientes só expõem a falha de rede como texto
var transientMarkers = []string{
	"econnreset",
	"etimedout",
	"econnrefused",
	"enotfound",
	"eai_again",
	"socket hang up",
	"network",
	"connection",
	"timeout",
	"unexpected eof",
}

// IsTransient reconhece falhas de transporte que costumam passar sozinhas.
// Cancelamento explícito do contexto nunca é transitório.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// Any combina predicados: o erro é retentável se algum deles aceitar
func Any(predicates ...func(error) bool) func(error) bool {
	return func(err error) bool {
		for _, predicate := range predicates {
			if predicate != nil && predicate(err) {
				return true
			}
		}
		return false
	}
}

// Unless restringe um predicado: erros aceitos por fatal nunca são retentados
func Unless(predicate func(error) bool, fatal func(error) bool) func(error) bool {
	return func(err error) bool {
		if fatal(err) {
			return false
		}
		return predicate(err)
	}
}

// Never é o predicado que desliga o retry
func Never(error) bool { return false }
