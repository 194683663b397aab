package api

import (
	"fmt"
	"net/http"

	"github.com/replaykit/mediacommerce/models"
)

// HTTPError is what this API returns on every failure. The message tells the
// user what to do about it; the internal fields only ever reach the logs.
type HTTPError struct {
	Code            int    `json:"code"`
	Message         string `json:"error"`
	InternalError   error  `json:"-"`
	InternalMessage string `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.InternalMessage != "" {
		return e.InternalMessage
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// WithInternalError adds internal error information to the error
func (e *HTTPError) WithInternalError(err error) *HTTPError {
	e.InternalError = err
	return e
}

// WithInternalMessage adds internal message information to the error
func (e *HTTPError) WithInternalMessage(fmtString string, args ...interface{}) *HTTPError {
	e.InternalMessage = fmt.Sprintf(fmtString, args...)
	return e
}

func httpError(code int, fmtString string, args ...interface{}) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: fmt.Sprintf(fmtString, args...),
	}
}

func badRequestError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusBadRequest, fmtString, args...)
}

func notFoundError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusNotFound, fmtString, args...)
}

func forbiddenError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusForbidden, fmtString, args...)
}

func unauthorizedError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusUnauthorized, fmtString, args...)
}

func internalServerError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusInternalServerError, fmtString, args...)
}

func badGatewayError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusBadGateway, fmtString, args...)
}

// fromDomainError maps the domain error taxonomy onto HTTP responses. The
// three user-visible failure shapes stay distinct: a dead link (expired), a
// link that never existed (not found) and a transient hiccup worth retrying.
func fromDomainError(err error) *HTTPError {
	switch e := err.(type) {
	case models.ValidationError:
		return badRequestError(e.Message)
	case models.InvalidRequestError:
		return badRequestError(e.Message)
	case models.NotFoundError:
		return notFoundError(e.Error())
	case models.ExpiredTokenError:
		return forbiddenError("Download link has expired")
	case models.PaymentProcessorError:
		return badGatewayError("The payment provider is unavailable, please try again").WithInternalError(e.Err)
	case models.StorageError:
		return internalServerError("Something went wrong, please try again").WithInternalError(e.Err)
	default:
		return internalServerError("Something went wrong, please try again").WithInternalError(err)
	}
}

func handleError(err error, w http.ResponseWriter, r *http.Request) {
	log := getLogEntry(r)

	httpErr, ok := err.(*HTTPError)
	if !ok {
		httpErr = fromDomainError(err)
	}

	if httpErr.Code >= http.StatusInternalServerError {
		log.WithError(httpErr.Cause()).Error(httpErr.Error())
	} else {
		log.WithError(httpErr.Cause()).Info(httpErr.Error())
	}

	sendJSON(w, httpErr.Code, httpErr)
}

// Cause returns the wrapped internal error when one was attached.
func (e *HTTPError) Cause() error {
	if e.InternalError != nil {
		return e.InternalError
	}
	return e
}
