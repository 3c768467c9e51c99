package qr_test

import (
	"bytes"
	"testing"
	"time"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/tickets/qr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicket() models.Ticket {
	return models.Ticket{
		TicketID:        "tkt_1756600000_000001",
		OrderID:         "ord-1",
		TripID:          "trip-garcia-sp-rj",
		SeatNumber:      "02",
		PassengerName:   "Maria da Silva",
		DocumentNumber:  "123.456.789-00",
		PriceAtPurchase: 214.99,
		IssuedAt:        time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateEncryptedQRProducesPNG(t *testing.T) {
	gen := qr.NewQRGenerator("ticket-qr-secret")

	img, err := gen.GenerateEncryptedQR(sampleTicket())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")), "QR output is a PNG image")
}

func TestGenerateEncryptedQRUniqueIVs(t *testing.T) {
	gen := qr.NewQRGenerator("ticket-qr-secret")
	ticket := sampleTicket()

	a, err := gen.GenerateEncryptedQR(ticket)
	require.NoError(t, err)
	b, err := gen.GenerateEncryptedQR(ticket)
	require.NoError(t, err)

	// A fresh IV per call means identical tickets never produce the
	// same ciphertext, so the images differ too
	assert.NotEqual(t, a, b)
}

func TestGenerateEncryptedQRIgnoresAttachedImage(t *testing.T) {
	gen := qr.NewQRGenerator("ticket-qr-secret")

	ticket := sampleTicket()
	withImage := ticket
	withImage.QRCode = bytes.Repeat([]byte{0xff}, 4096)

	_, err := gen.GenerateEncryptedQR(withImage)
	assert.NoError(t, err, "payload drops the image bytes before encoding")
}

func TestShortSecretStillWorks(t *testing.T) {
	// The secret is hashed to a fixed AES key size, so any length works
	gen := qr.NewQRGenerator("x")

	_, err := gen.GenerateEncryptedQR(sampleTicket())
	assert.NoError(t, err)
}
