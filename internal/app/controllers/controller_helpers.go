package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/internhub/internal/app/forms"
	"github.com/yigit/internhub/internal/app/models/dto"
	"github.com/yigit/internhub/internal/middleware"
)

// parseIDParam parses a positive ID parameter from the request path. On
// failure it answers 400 and returns false.
func parseIDParam(ctx *gin.Context, paramName, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindFormData reads the submitted form. On failure the error response has
// already been written.
func bindFormData(ctx *gin.Context, maxMemory int64) (forms.Data, bool) {
	data, err := forms.DataFromRequest(ctx.Request, maxMemory)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return forms.Data{}, false
	}
	return data, true
}

func toChoiceData(choices []forms.Choice) []dto.ChoiceData {
	out := make([]dto.ChoiceData, 0, len(choices))
	for _, c := range choices {
		out = append(out, dto.ChoiceData{Value: c.Value, Label: c.Label})
	}
	return out
}
