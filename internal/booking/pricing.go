package booking

// Quote is the price breakdown shown in the order summary.
type Quote struct {
	PricePerSeat float64 `json:"price_per_seat"`
	SeatCount    int     `json:"seat_count"`
	Subtotal     float64 `json:"subtotal"`
	ServiceFee   float64 `json:"service_fee"`
	Total        float64 `json:"total"`
}

// ComputeTotal prices a selection. An empty selection always totals to
// zero, fee included, so the UI can gate the continue action on it.
func ComputeTotal(pricePerSeat float64, seatCount int, serviceFee float64) float64 {
	if seatCount <= 0 {
		return 0
	}
	return pricePerSeat*float64(seatCount) + serviceFee
}

func NewQuote(pricePerSeat float64, seatCount int, serviceFee float64) Quote {
	q := Quote{
		PricePerSeat: pricePerSeat,
		SeatCount:    seatCount,
		ServiceFee:   serviceFee,
	}
	if seatCount <= 0 {
		q.ServiceFee = 0
		return q
	}
	q.Subtotal = pricePerSeat * float64(seatCount)
	q.Total = q.Subtotal + q.ServiceFee
	return q
}
