package api

import (
	"context"
	"errors"
	"net/http"

	"StockPredict/internal/domain/models"
	"StockPredict/internal/usecase"
	xhttp "StockPredict/pkg/http"
	xlogger "StockPredict/pkg/logger"
	"StockPredict/pkg/util"

	"github.com/labstack/echo/v4"
)

// PredictUseCase is the prediction pipeline as seen by the transport layer.
type PredictUseCase interface {
	Predict(ctx context.Context, ticker string) (*models.ResponsePayload, error)
}

// PredictEchoHandler serves GET /predict.
type PredictEchoHandler struct {
	logger    *xlogger.Logger
	predictor PredictUseCase
}

func NewPredictEchoHandler(logger *xlogger.Logger, p PredictUseCase) *PredictEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PredictEchoHandler{logger: logger, predictor: p}
}

func (h *PredictEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/predict", h.Predict)
}

func (h *PredictEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ErrorResponse(c, http.StatusBadRequest, xhttp.ValidationMessage(verr))
	}
	ticker := util.NormalizeTicker(req.Ticker)

	res, err := h.predictor.Predict(c.Request().Context(), ticker)
	if err != nil {
		return xhttp.AppErrorResponse(c, h.classify(ticker, err))
	}
	return xhttp.JSONResponse(c, http.StatusOK, res)
}

// classify maps pipeline errors onto HTTP errors.
func (h *PredictEchoHandler) classify(ticker string, err error) *xhttp.AppError {
	switch {
	case errors.Is(err, usecase.ErrNoData):
		return xhttp.BadRequestErrorf("No data found for ticker %s. Please check the ticker symbol.", ticker).WithError(err)
	case errors.Is(err, usecase.ErrInvalidTicker):
		return xhttp.BadRequestError(err.Error())
	default:
		h.logger.Error("predict usecase error", xlogger.String("ticker", ticker), xlogger.Error(err))
		return xhttp.InternalErrorf("An unexpected error occurred: %s", err.Error()).WithError(err)
	}
}
