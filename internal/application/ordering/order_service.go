package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/ordering"
	"github.com/jx4/backend/internal/domain/shared"
)

// OrderService is the admin read surface over orders. Orders are written
// once at checkout and never modified here.
type OrderService struct {
	orderRepo ordering.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// List retrieves orders visible to the caller's scope, most recent first
func (s *OrderService) List(ctx context.Context, scope identity.Scope, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	slugs, all := scope.VisibleDepartments()
	if all {
		orders, err := s.orderRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err := s.orderRepo.Count(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		return ToOrderResponses(orders), total, nil
	}

	if len(slugs) == 0 {
		return nil, 0, shared.ErrForbidden
	}
	orders, err := s.orderRepo.FindByDepartments(ctx, slugs, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	countFilter, visible := scopedCountFilter(domainFilter, slugs)
	var total int64
	if visible {
		total, err = s.orderRepo.Count(ctx, countFilter)
		if err != nil {
			return nil, 0, err
		}
	}
	return ToOrderResponses(orders), total, nil
}

// scopedCountFilter restricts a count to the visible departments while
// keeping every other active filter, so the reported total matches the
// listed rows. An explicit department filter outside the visible set
// matches nothing; the second return value reports whether anything can
// match at all.
func scopedCountFilter(filter shared.Filter, slugs []string) (shared.Filter, bool) {
	countFilter := filter
	countFilter.Filters = make(map[string]interface{}, len(filter.Filters)+1)
	for k, v := range filter.Filters {
		countFilter.Filters[k] = v
	}
	if requested, ok := countFilter.Filters["departamento"].(string); ok {
		for _, slug := range slugs {
			if slug == requested {
				return countFilter, true
			}
		}
		return countFilter, false
	}
	countFilter.Filters["departamento"] = slugs
	return countFilter, true
}

// GetByID retrieves an order visible to the caller's scope
func (s *OrderService) GetByID(ctx context.Context, scope identity.Scope, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !scope.CanViewDepartment(order.Department) {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// buildOrderFilter converts the list filter into a domain filter
func buildOrderFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "fecha_pedido",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["estado"] = filter.Status
	}
	if filter.Department != "" {
		domainFilter.Filters["departamento"] = filter.Department
	}
	if filter.DeliveryMethod != "" {
		domainFilter.Filters["metodo_entrega"] = filter.DeliveryMethod
	}
	return domainFilter
}
