package blockhash

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/sosiol/sosiol/internal/adapter"
)

// FailureKind is the classification of a failed blockhash fetch
type FailureKind int

const (
	// Unknown failures are handled like transport failures
	Unknown FailureKind = iota
	// Transport covers timeouts, refused or reset connections, DNS and retryable HTTP statuses
	Transport
	// InsufficientFunds reflects wallet state, so no other endpoint will do better
	InsufficientFunds
)

func (k FailureKind) String() string {
	switch k {
	case Transport:
		return "transport"
	case InsufficientFunds:
		return "insufficient_funds"
	default:
		return "unknown"
	}
}

var insufficientFundsMarkers = []string{
	"insufficient funds",
	"insufficient lamports",
	"insufficientfundsforfee",
	"insufficientfundsforrent",
	"no record of a prior credit",
}

var transportMarkers = []string{
	"timeout",
	"timed out",
	"forbidden",
	"connection refused",
	"connection reset",
	"no such host",
	"eof",
}

// SPL token error 1 is InsufficientFunds
var customProgramErrorRe = regexp.MustCompile(`custom program error: 0x([0-9a-f]+)`)

const splTokenInsufficientFunds = 1

// Classify sorts a fetch failure into insufficient funds, transport or unknown
func Classify(err error) FailureKind {
	if err == nil {
		return Unknown
	}

	msg := strings.ToLower(err.Error())

	for _, marker := range insufficientFundsMarkers {
		if strings.Contains(msg, marker) {
			return InsufficientFunds
		}
	}
	if m := customProgramErrorRe.FindStringSubmatch(msg); m != nil {
		if code, perr := strconv.ParseUint(m[1], 16, 32); perr == nil && code == splTokenInsufficientFunds {
			return InsufficientFunds
		}
	}
	if strings.Contains(strings.ReplaceAll(msg, " ", ""), `"custom":1}`) {
		return InsufficientFunds
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return Transport
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Transport
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Transport
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Transport
	}

	switch code := adapter.StatusCodeOf(err); {
	case code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusTooManyRequests,
		code >= http.StatusInternalServerError:
		return Transport
	}

	for _, marker := range transportMarkers {
		if strings.Contains(msg, marker) {
			return Transport
		}
	}

	return Unknown
}
