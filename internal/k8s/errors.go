package k8s

import (
	"context"
	"errors"
	"net"
	"net/url"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	utilnet "k8s.io/apimachinery/pkg/util/net"
)

var (
	// ErrNotConnected is returned by every operation of a client whose
	// kubeconfig could not be loaded.
	ErrNotConnected = errors.New("not connected to a kubernetes cluster")

	// ErrOperationNotAllowed is returned when read-only mode blocks a
	// mutating operation.
	ErrOperationNotAllowed = errors.New("operation not allowed")
)

// ErrorKind groups errors by how the console reports them.
type ErrorKind int

const (
	// ErrorKindOther covers everything that is neither an API nor a
	// connectivity failure.
	ErrorKindOther ErrorKind = iota

	// ErrorKindAPI is a structured error returned by the API server.
	ErrorKindAPI

	// ErrorKindConnectivity means the API server could not be reached.
	ErrorKindConnectivity
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindAPI:
		return "api"
	case ErrorKindConnectivity:
		return "connectivity"
	default:
		return "other"
	}
}

// Classify reports the kind of err. A nil error is ErrorKindOther.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindOther
	}

	var status apierrors.APIStatus
	if errors.As(err, &status) {
		return ErrorKindAPI
	}

	if errors.Is(err, ErrNotConnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		utilnet.IsConnectionRefused(err) ||
		utilnet.IsConnectionReset(err) ||
		utilnet.IsProbableEOF(err) {
		return ErrorKindConnectivity
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrorKindConnectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorKindConnectivity
	}

	return ErrorKindOther
}

// APIMessage returns the server supplied message of an API error, or the
// plain error text for anything else.
func APIMessage(err error) string {
	if err == nil {
		return ""
	}
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		if msg := status.Status().Message; msg != "" {
			return msg
		}
	}
	return err.Error()
}
