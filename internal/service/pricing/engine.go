package pricing

import (
	"fmt"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// OptionPrices стоимость опций на одного участника в минимальных единицах валюты
type OptionPrices struct {
	Photo  int64
	Drybag int64
	Vest   int64
}

// Quote разбивка цены бронирования
type Quote struct {
	InstructorPrice int64
	RoutePrice      int64
	OptionsCost     int64
	PerParticipant  int64
	Participants    int
	Total           int64
}

// Engine рассчитывает стоимость бронирования на сервере.
// Цена клиента только сверяется с результатом и никогда не используется как есть.
type Engine struct {
	prices OptionPrices
}

// NewEngine создает калькулятор с ценами опций
func NewEngine(prices OptionPrices) *Engine {
	return &Engine{prices: prices}
}

// OptionsCost стоимость выбранных опций на одного участника
func (e *Engine) OptionsCost(options domain.Options) int64 {
	var cost int64
	if options.Photo {
		cost += e.prices.Photo
	}
	if options.Drybag {
		cost += e.prices.Drybag
	}
	if options.Vest {
		cost += e.prices.Vest
	}
	return cost
}

// Quote рассчитывает (instructor.base_price + route.base_price + стоимость опций) × participants
func (e *Engine) Quote(instructor *domain.Instructor, route *domain.Route, options domain.Options, participants int) (*Quote, error) {
	if participants < domain.MinParticipants {
		return nil, ErrInvalidParticipants
	}
	if instructor.BasePrice < 0 || route.BasePrice < 0 {
		return nil, fmt.Errorf("%w: instructor=%d route=%d", ErrNegativePrice, instructor.BasePrice, route.BasePrice)
	}

	optionsCost := e.OptionsCost(options)
	perParticipant := instructor.BasePrice + route.BasePrice + optionsCost

	return &Quote{
		InstructorPrice: instructor.BasePrice,
		RoutePrice:      route.BasePrice,
		OptionsCost:     optionsCost,
		PerParticipant:  perParticipant,
		Participants:    participants,
		Total:           perParticipant * int64(participants),
	}, nil
}

// Price итоговая стоимость бронирования
func (e *Engine) Price(instructor *domain.Instructor, route *domain.Route, options domain.Options, participants int) (int64, error) {
	quote, err := e.Quote(instructor, route, options, participants)
	if err != nil {
		return 0, err
	}
	return quote.Total, nil
}
