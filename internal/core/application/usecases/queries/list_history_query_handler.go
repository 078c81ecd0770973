package queries

import (
	"context"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/ports"
)

type ListHistoryQueryHandler struct {
	history ports.HistoryRepository
}

func NewListHistoryQueryHandler(history ports.HistoryRepository) ListHistoryQueryHandler {
	return ListHistoryQueryHandler{history: history}
}

func (h ListHistoryQueryHandler) Handle(ctx context.Context, query ListHistoryQuery) ([]history.PreviousOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.history.ListByOwner(ctx, query.Actor().Role(), query.Actor().Email())
}

type GetEarningsQueryHandler struct {
	history ports.HistoryRepository
}

func NewGetEarningsQueryHandler(history ports.HistoryRepository) GetEarningsQueryHandler {
	return GetEarningsQueryHandler{history: history}
}

func (h GetEarningsQueryHandler) Handle(ctx context.Context, query GetEarningsQuery) (GetEarningsResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsResponse{}, err
	}

	entries, err := h.history.ListByOwner(ctx, query.Actor().Role(), query.Actor().Email())
	if err != nil {
		return GetEarningsResponse{}, err
	}

	return GetEarningsResponse{
		Total:  history.Earnings(query.Actor().Role(), entries),
		Orders: len(entries),
	}, nil
}
