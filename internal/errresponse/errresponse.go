package errresponse

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/logging"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

// ErrUnauthorized never echoes err to the client; token parse failures stay in the log.
func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Could not validate user.",
	}
}

func ErrForbiddenOwner(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Not the owner of this resource.",
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Resource already exists.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFoundFor(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// FromError picks the renderer for an error coming out of the store or a Bind.
func FromError(err error) render.Renderer {
	var verrs validation.Errors
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFoundFor(err)
	case errors.Is(err, store.ErrNotOwner):
		return ErrForbiddenOwner(err)
	case errors.Is(err, store.ErrDuplicate):
		return ErrConflict(err)
	case errors.As(err, &verrs):
		return ErrInvalidRequest(err)
	default:
		return ErrInternal(err)
	}
}

// Respond renders err with FromError. Server side failures are logged since
// their detail is not sent to the client.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	rr := FromError(err)
	if e, ok := rr.(*ErrResponse); ok && e.HTTPStatusCode >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Errorw("request failed", "error", err)
	}

	if err := render.Render(w, r, rr); err != nil {
		logging.FromContext(r.Context()).Errorw("render error response", "error", err)
	}
}
