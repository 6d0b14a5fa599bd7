package service

import (
	"context"
	"errors"
	"saree-checkout/internal/model"
	"saree-checkout/internal/signature"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("converts rupees to paise", func(t *testing.T) {
		env := newTestEnv(t)

		checkout, err := env.razorpayService().CreateOrder(ctx, &RazorpayOrderInput{
			Amount: decimal.RequireFromString("499.99"),
		})
		require.NoError(t, err)
		assert.Equal(t, "rzp_test_key", checkout.Key)
		assert.Equal(t, "order_rzp_1", checkout.Order["id"])

		req := env.razorpay.lastReq
		assert.Equal(t, int64(49999), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Regexp(t, `^rcpt_\d+$`, req.Receipt)
	})

	t.Run("invalid amount", func(t *testing.T) {
		env := newTestEnv(t)

		for _, amount := range []string{"0", "-5"} {
			_, err := env.razorpayService().CreateOrder(ctx, &RazorpayOrderInput{Amount: decimal.RequireFromString(amount)})
			assert.ErrorIs(t, err, ErrInvalidAmount, amount)
		}
	})

	t.Run("keys not configured", func(t *testing.T) {
		env := newTestEnv(t)
		env.razorpay.keySecret = ""

		_, err := env.razorpayService().CreateOrder(ctx, &RazorpayOrderInput{Amount: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, ErrServerConfig)
	})

	t.Run("provider failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.razorpay.err = errors.New("razorpay error 401")

		_, err := env.razorpayService().CreateOrder(ctx, &RazorpayOrderInput{Amount: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, ErrProviderCommunication)
	})
}

func TestRazorpayVerifyPayment(t *testing.T) {
	ctx := context.Background()
	expected := signature.HMACSignature("s", "o1", "p1")

	t.Run("valid signature creates paid order", func(t *testing.T) {
		env := newTestEnv(t)
		seedCart(t, env.db, testUserID)

		order, err := env.razorpayService().VerifyPayment(ctx, testUserID, &RazorpayVerifyInput{
			OrderID: "o1", PaymentID: "p1", Signature: expected,
		})
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPaid, order.Status)
		assert.Equal(t, model.PaymentMethodRazorpay, order.PaymentMethod)
		assert.Equal(t, int64(1800), order.Amount)
		assert.Equal(t, "o1", *order.RazorpayOrderID)
		assert.Equal(t, "p1", *order.RazorpayPaymentID)
		assert.Nil(t, order.ShippingAddress)
		assert.Equal(t, int64(0), cartItemCount(t, env.db, testUserID))
	})

	t.Run("mutated signature is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		seedCart(t, env.db, testUserID)

		_, err := env.razorpayService().VerifyPayment(ctx, testUserID, &RazorpayVerifyInput{
			OrderID: "o1", PaymentID: "p1", Signature: expected + "x",
		})
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.Equal(t, int64(0), orderCount(t, env.db))
		assert.Equal(t, int64(1), cartItemCount(t, env.db, testUserID))
	})

	t.Run("replayed verify returns the same order", func(t *testing.T) {
		env := newTestEnv(t)
		seedCart(t, env.db, testUserID)
		input := &RazorpayVerifyInput{OrderID: "o1", PaymentID: "p1", Signature: expected}

		first, err := env.razorpayService().VerifyPayment(ctx, testUserID, input)
		require.NoError(t, err)
		second, err := env.razorpayService().VerifyPayment(ctx, testUserID, input)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, int64(1), orderCount(t, env.db))
		assert.Equal(t, int32(1), env.cartRepo.clears.Load())
	})

	t.Run("replay by another user", func(t *testing.T) {
		env := newTestEnv(t)
		seedCart(t, env.db, testUserID)
		input := &RazorpayVerifyInput{OrderID: "o1", PaymentID: "p1", Signature: expected}

		_, err := env.razorpayService().VerifyPayment(ctx, testUserID, input)
		require.NoError(t, err)

		_, err = env.razorpayService().VerifyPayment(ctx, "user-2", input)
		assert.ErrorIs(t, err, ErrDuplicateOrder)
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.razorpayService().VerifyPayment(ctx, testUserID, &RazorpayVerifyInput{OrderID: "o1", PaymentID: "p1"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		env := newTestEnv(t)
		seedCart(t, env.db, testUserID)

		_, err := env.razorpayService().VerifyPayment(ctx, "", &RazorpayVerifyInput{
			OrderID: "o1", PaymentID: "p1", Signature: expected,
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, int64(0), orderCount(t, env.db))
	})

	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.razorpayService().VerifyPayment(ctx, testUserID, &RazorpayVerifyInput{
			OrderID: "o1", PaymentID: "p1", Signature: expected,
		})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("secret not configured", func(t *testing.T) {
		env := newTestEnv(t)
		env.razorpay.keySecret = ""

		_, err := env.razorpayService().VerifyPayment(ctx, testUserID, &RazorpayVerifyInput{
			OrderID: "o1", PaymentID: "p1", Signature: expected,
		})
		assert.ErrorIs(t, err, ErrServerConfig)
	})
}
