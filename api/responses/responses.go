package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteError logs the full chain and sends the public projection.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(dump.Code),
			"error_chain": dump.Chain,
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, dump.TopMessage, err)
		} else {
			logg.Warn(ctx, dump.TopMessage)
		}
	}

	apiError := types.APIError{
		Code:    string(typed.Code()),
		Message: typed.Message(),
	}
	if apiError.Message == "" {
		apiError.Message = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		apiError.Details = typed.Details()
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Error: apiError})
}
