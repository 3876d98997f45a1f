package service_test

import (
	"context"
	"testing"

	appErrors "github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateGatewayOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*models.PaymentHandle, error) {
	args := m.Called(ctx, amountMinor, currency, receipt, notes)
	if handle := args.Get(0); handle != nil {
		return handle.(*models.PaymentHandle), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	args := m.Called(gatewayOrderID, paymentID, signature)

	return args.Error(0)
}

func (m *mockGateway) Name() string {
	return "razorpay"
}

func TestCreateGatewayOrder(t *testing.T) {
	ctx := context.Background()
	identity := testShopper()

	t.Run("Success - Rupees Become Paisa", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 199.99}, nil).Once()
		gateway.On("CreateGatewayOrder", ctx, int64(19999), "INR", "order-1", map[string]string{"order_id": "order-1"}).
			Return(&models.PaymentHandle{
				GatewayOrderID: "rzp-order-1",
				Currency:       "INR",
				AmountMinor:    19999,
				KeyID:          "rzp_test_key",
			}, nil).Once()

		// Act
		resp, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "rzp-order-1", resp.Handle.GatewayOrderID)
		assert.Equal(t, "rzp_test_key", resp.Options.Key)
		assert.Equal(t, int64(19999), resp.Options.Amount)
		assert.Equal(t, "rzp-order-1", resp.Options.OrderID)
		assert.Equal(t, "QuickCart Store", resp.Options.Name)
		assert.Equal(t, "Order #order-1", resp.Options.Description)
		assert.Equal(t, "Test Shopper", resp.Options.Prefill.Name)
		assert.Equal(t, "test@example.com", resp.Options.Prefill.Email)
		assert.Equal(t, "#dc2626", resp.Options.Theme.Color)

		commerce.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("Failure - Already Paid", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 10, IsPaid: true}, nil).Once()

		// Act
		resp, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
		gateway.AssertNotCalled(t, "CreateGatewayOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Handle Without Gateway Order Id", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 10}, nil).Once()
		gateway.On("CreateGatewayOrder", ctx, int64(1000), "INR", "order-1", mock.Anything).
			Return(&models.PaymentHandle{GatewayOrderID: ""}, nil).Once()

		// Act
		resp, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodePaymentGateway))
	})

	t.Run("Failure - Second Attempt While In Flight", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 10}, nil).Once()
		gateway.On("CreateGatewayOrder", ctx, int64(1000), "INR", "order-1", mock.Anything).
			Return(&models.PaymentHandle{GatewayOrderID: "rzp-order-1", AmountMinor: 1000, Currency: "INR", KeyID: "k"}, nil).Once()

		_, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})
		require.NoError(t, err)

		// Act
		resp, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})

		// Assert
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})

	t.Run("Success - Cancel Releases The Attempt", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 10}, nil).Twice()
		gateway.On("CreateGatewayOrder", ctx, int64(1000), "INR", "order-1", mock.Anything).
			Return(&models.PaymentHandle{GatewayOrderID: "rzp-order-1", AmountMinor: 1000, Currency: "INR", KeyID: "k"}, nil).Twice()

		_, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})
		require.NoError(t, err)

		require.NoError(t, payments.Cancel(ctx, identity, &models.CancelPaymentRequest{OrderID: "order-1"}))

		// Act
		resp, err := payments.CreateOrder(ctx, identity, &models.CreateGatewayOrderRequest{OrderID: "order-1"})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	identity := testShopper()

	confirmReq := &models.ConfirmPaymentRequest{
		OrderID:           "order-1",
		RazorpayPaymentID: "pay-1",
		RazorpayOrderID:   "rzp-order-1",
		RazorpaySignature: "sig-1",
	}

	t.Run("Success - Marks The Order Paid", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", TotalPrice: 10}, nil).Once()
		gateway.On("VerifySignature", "rzp-order-1", "pay-1", "sig-1").Return(nil).Once()

		var captured *models.PaymentResult

		paid := &models.Order{ID: "order-1", TotalPrice: 10, IsPaid: true}
		commerce.On("MarkOrderPaid", ctx, identity.Token, "order-1", mock.AnythingOfType("*models.PaymentResult")).
			Run(func(args mock.Arguments) {
				captured = args.Get(3).(*models.PaymentResult)
			}).
			Return(paid, nil).Once()

		// Act
		order, err := payments.Confirm(ctx, identity, confirmReq)

		// Assert
		require.NoError(t, err)
		assert.True(t, order.IsPaid)

		require.NotNil(t, captured)
		assert.Equal(t, "pay-1", captured.PaymentIntentID)
		assert.Equal(t, "rzp-order-1", captured.RazorpayOrderID)
		assert.Equal(t, "sig-1", captured.RazorpaySignature)
		assert.Equal(t, "succeeded", captured.Status)

		commerce.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("Success - Replay For A Settled Order", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1", IsPaid: true}, nil).Once()

		// Act
		order, err := payments.Confirm(ctx, identity, confirmReq)

		// Assert
		require.NoError(t, err)
		assert.True(t, order.IsPaid)
		gateway.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
		commerce.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Bad Signature Never Marks Paid", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1"}, nil).Once()
		gateway.On("VerifySignature", "rzp-order-1", "pay-1", "sig-1").
			Return(appErrors.PaymentGatewayError("Payment signature verification failed")).Once()

		// Act
		order, err := payments.Confirm(ctx, identity, confirmReq)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodePaymentGateway))
		commerce.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Backend Rejects Mark Paid", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		gateway := &mockGateway{}
		payments := service.NewPaymentService(commerce, gateway, nil, paymentConfig())

		commerce.On("GetOrder", ctx, identity.Token, "order-1").
			Return(&models.Order{ID: "order-1"}, nil).Once()
		gateway.On("VerifySignature", "rzp-order-1", "pay-1", "sig-1").Return(nil).Once()
		commerce.On("MarkOrderPaid", ctx, identity.Token, "order-1", mock.Anything).
			Return(nil, appErrors.UpstreamError("backend exploded")).Once()

		// Act
		order, err := payments.Confirm(ctx, identity, confirmReq)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUpstream))
	})
}
