package razorpay_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quickcart/storefront/pkg/razorpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "key-id", user)
			assert.Equal(t, "key-secret", pass)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 19999, body["amount"])
			assert.Equal(t, "INR", body["currency"])
			assert.Equal(t, "order-1", body["receipt"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":       "rzp-order-1",
				"amount":   19999,
				"currency": "INR",
				"receipt":  "order-1",
				"status":   "created",
			})
		}))
		t.Cleanup(srv.Close)

		client := razorpay.New(razorpay.Config{KeyID: "key-id", KeySecret: "key-secret", BaseURL: srv.URL})

		// Act
		order, err := client.CreateOrder(ctx, 19999, "INR", "order-1", map[string]string{"order_id": "order-1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "rzp-order-1", order.ID)
		assert.Equal(t, int64(19999), order.Amount)
		assert.Equal(t, "created", order.Status)
	})

	t.Run("Failure - API Error Description Is Surfaced", func(t *testing.T) {
		// Arrange
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "BAD_REQUEST_ERROR", "description": "amount must be at least 100"},
			})
		}))
		t.Cleanup(srv.Close)

		client := razorpay.New(razorpay.Config{KeyID: "key-id", KeySecret: "key-secret", BaseURL: srv.URL})

		// Act
		order, err := client.CreateOrder(ctx, 1, "INR", "order-1", nil)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.Contains(t, err.Error(), "amount must be at least 100")
	})
}

func TestVerifySignature(t *testing.T) {

	client := razorpay.New(razorpay.Config{KeyID: "key-id", KeySecret: "key-secret"})

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte("key-secret"))
		mac.Write([]byte(orderID + "|" + paymentID))

		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, client.VerifySignature("rzp-order-1", "pay-1", sign("rzp-order-1", "pay-1")))
	})

	t.Run("Failure - Tampered Payment Id", func(t *testing.T) {
		err := client.VerifySignature("rzp-order-1", "pay-2", sign("rzp-order-1", "pay-1"))
		assert.ErrorIs(t, err, razorpay.ErrSignatureMismatch)
	})

	t.Run("Failure - Wrong Secret", func(t *testing.T) {
		other := razorpay.New(razorpay.Config{KeyID: "key-id", KeySecret: "other-secret"})
		err := other.VerifySignature("rzp-order-1", "pay-1", sign("rzp-order-1", "pay-1"))
		assert.ErrorIs(t, err, razorpay.ErrSignatureMismatch)
	})

	t.Run("Failure - Empty Signature", func(t *testing.T) {
		err := client.VerifySignature("rzp-order-1", "pay-1", "")
		assert.ErrorIs(t, err, razorpay.ErrSignatureMismatch)
	})
}
