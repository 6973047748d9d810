// Package ordering contains the checkout finalizer and the admin order
// listing surface.
package ordering

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/ordering"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/shared/valueobject"
	"github.com/jx4/backend/internal/domain/siteconfig"
	"github.com/jx4/backend/internal/infrastructure/cache"
	"github.com/jx4/backend/internal/infrastructure/messaging"
)

// CheckoutService turns a validated cart into an immutable order record plus
// a WhatsApp handoff link. Persistence and notification are independent
// best-effort steps: a failed save is reported but never blocks the message,
// and vice versa.
type CheckoutService struct {
	productRepo    catalog.ProductRepository
	departmentRepo catalog.DepartmentRepository
	orderRepo      ordering.OrderRepository
	configRepo     siteconfig.Repository
	links          *messaging.LinkBuilder
	customers      cache.CustomerStore
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. customers may be nil when
// the autofill store is disabled.
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	departmentRepo catalog.DepartmentRepository,
	orderRepo ordering.OrderRepository,
	configRepo siteconfig.Repository,
	links *messaging.LinkBuilder,
	customers cache.CustomerStore,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo:    productRepo,
		departmentRepo: departmentRepo,
		orderRepo:      orderRepo,
		configRepo:     configRepo,
		links:          links,
		customers:      customers,
		logger:         logger,
	}
}

// Finalize runs the checkout pipeline. Validation failures leave everything
// untouched; after validation the remaining steps each run regardless of the
// previous step's outcome.
func (s *CheckoutService) Finalize(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer phone is required")
	}

	cart, err := s.rebuildCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	deliveryMethod := ordering.DeliveryMethod(req.DeliveryMethod)
	carrier, carrierFee, err := s.resolveCarrier(ctx, deliveryMethod, req.CarrierID)
	if err != nil {
		return nil, err
	}
	if deliveryMethod == ordering.DeliveryMethodDelivery && strings.TrimSpace(req.Address) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery orders need an address")
	}

	// The rate read here is the one persisted on the order; redisplay always
	// uses the stored rate, never the live one.
	config := s.loadConfig(ctx)
	rate, err := config.Rate()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate is not configured")
	}

	// Round before converting so the persisted USD/VES pair stays
	// consistent even when item prices carry sub-cent precision.
	totalUSD := cart.Subtotal().MustAdd(carrierFee).Round(2)
	totalVES, err := rate.Convert(totalUSD)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	params := ordering.NewOrderParams{
		Code:           ordering.GenerateOrderCode(now),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		Items:          cart.Items(),
		TotalUSD:       totalUSD.Amount(),
		TotalVES:       totalVES.Amount(),
		AppliedRate:    rate.Rate(),
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: deliveryMethod,
		Department:     cart.Department(),
		Address:        strings.TrimSpace(req.Address),
		Notes:          strings.TrimSpace(req.Notes),
		PlacedAt:       now,
	}
	if carrier != nil {
		params.CarrierName = carrier.Name
		params.CarrierFeeUSD = carrier.Price
	}

	order, err := ordering.NewOrder(params)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		OrderCode:   order.Code,
		TotalUSD:    order.TotalUSD,
		TotalVES:    order.TotalVES,
		AppliedRate: order.AppliedRate,
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Order persistence failed",
			zap.String("order_id", order.Code),
			zap.Error(err))
		result.Persist = PersistResult{Saved: false, Error: err.Error()}
	} else {
		result.Persist = PersistResult{Saved: true}
	}

	result.Notify = s.notify(ctx, order, config)

	s.saveCustomerProfile(ctx, req)
	cart.Clear()

	s.logger.Info("Checkout finalized",
		zap.String("order_id", order.Code),
		zap.String("departamento", order.Department),
		zap.String("total", order.TotalUSD.StringFixed(2)),
		zap.Bool("saved", result.Persist.Saved),
		zap.Bool("link_built", result.Notify.LinkBuilt))

	return result, nil
}

// rebuildCart fetches the authoritative product rows and replays the cart
// rules over them. Client-sent prices are never trusted.
func (s *CheckoutService) rebuildCart(ctx context.Context, items []CheckoutItem) (*ordering.Cart, error) {
	if len(items) == 0 {
		return nil, ordering.ErrEmptyCart
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := ordering.NewCart()
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "A cart product no longer exists")
		}
		if !product.Available {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "A cart product is no longer available")
		}
		if err := cart.Add(product, item.Quantity); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// resolveCarrier validates the carrier selection. A carrier is required for
// delivery only when carrier options exist at all.
func (s *CheckoutService) resolveCarrier(ctx context.Context, method ordering.DeliveryMethod, carrierID *uuid.UUID) (*catalog.Product, valueobject.Money, error) {
	noFee := valueobject.ZeroUSD()
	if method != ordering.DeliveryMethodDelivery {
		return nil, noFee, nil
	}

	if carrierID == nil {
		carriers, err := s.productRepo.FindCarriers(ctx)
		if err != nil {
			return nil, noFee, err
		}
		if len(carriers) > 0 {
			return nil, noFee, shared.NewDomainError("CARRIER_REQUIRED", "Delivery orders must select a carrier")
		}
		return nil, noFee, nil
	}

	carrier, err := s.productRepo.FindByID(ctx, *carrierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, noFee, shared.NewDomainError("CARRIER_NOT_FOUND", "Selected carrier does not exist")
		}
		return nil, noFee, err
	}
	if !carrier.IsCarrier() {
		return nil, noFee, shared.NewDomainError("NOT_A_CARRIER", "Selected product is not a carrier option")
	}
	return carrier, carrier.PriceMoney(), nil
}

// loadConfig returns the stored configuration or the defaults
func (s *CheckoutService) loadConfig(ctx context.Context) *siteconfig.SiteConfig {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Site config read failed, using defaults", zap.Error(err))
		}
		return siteconfig.Default()
	}
	return config
}

// notify renders the order message and builds the deep link to the
// department's WhatsApp contact, falling back to the store-wide contact.
func (s *CheckoutService) notify(ctx context.Context, order *ordering.Order, config *siteconfig.SiteConfig) NotifyResult {
	phone := config.WhatsAppGeneral
	department, err := s.departmentRepo.FindBySlug(ctx, order.Department)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Department lookup failed during notify",
				zap.String("departamento", order.Department),
				zap.Error(err))
		}
	} else if department.WhatsAppPhone != "" {
		phone = department.WhatsAppPhone
	}

	if strings.TrimSpace(phone) == "" {
		s.logger.Error("No WhatsApp contact configured for order",
			zap.String("order_id", order.Code),
			zap.String("departamento", order.Department))
		return NotifyResult{LinkBuilt: false, Error: "no WhatsApp contact configured"}
	}

	link := s.links.BuildLink(phone, messaging.RenderOrderMessage(order))
	return NotifyResult{LinkBuilt: true, Link: link}
}

// saveCustomerProfile stores the checkout identity for autofill, best-effort
func (s *CheckoutService) saveCustomerProfile(ctx context.Context, req CheckoutRequest) {
	if s.customers == nil {
		return
	}
	profile := cache.CustomerProfile{
		Name:    strings.TrimSpace(req.CustomerName),
		Phone:   strings.TrimSpace(req.CustomerPhone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.customers.Save(ctx, profile); err != nil {
		s.logger.Warn("Customer profile save failed", zap.Error(err))
	}
}
