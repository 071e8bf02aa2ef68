package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discount-kart/internal/discount"
	"discount-kart/internal/metrics"
	"discount-kart/internal/model"
	"discount-kart/internal/promo"
	"discount-kart/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// quoteService implements QuoteService. It owns one engine per mode so a
// request can override the configured default.
type quoteService struct {
	productRepo repository.ProductRepository
	promos      promo.Resolver
	engines     map[discount.Mode]*discount.Engine
	defaultMode discount.Mode
	validate    *validator.Validate
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewQuoteService creates a quote service. promos may be nil when no promo
// books are configured, in which case every promo code is unknown.
func NewQuoteService(
	productRepo repository.ProductRepository,
	promos promo.Resolver,
	dispatcher discount.Dispatcher,
	defaultMode discount.Mode,
	m *metrics.Metrics,
	logger zerolog.Logger,
) QuoteService {
	return &quoteService{
		productRepo: productRepo,
		promos:      promos,
		engines: map[discount.Mode]*discount.Engine{
			discount.Strict:     discount.New(dispatcher, discount.WithMode(discount.Strict)),
			discount.Permissive: discount.New(dispatcher, discount.WithMode(discount.Permissive)),
		},
		defaultMode: defaultMode,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		metrics:     m,
		logger:      logger.With().Str("service", "quote").Logger(),
	}
}

func (s *quoteService) Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	engine, err := s.engineFor(req.Mode)
	if err != nil {
		return nil, err
	}

	classification, err := s.resolve(ctx, req.Discount, req.PromoCode)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	resp := &model.QuoteResponse{
		ID:           uuid.New(),
		DiscountKind: string(classification.Kind()),
		Mode:         engine.Mode().String(),
		Lines:        make([]model.QuoteLine, 0, len(req.Items)),
		Subtotal:     decimal.Zero,
		Discount:     decimal.Zero,
		Total:        decimal.Zero,
	}

	for _, reqItem := range req.Items {
		product := products[reqItem.ProductID]
		item := product.Item(reqItem.Quantity)

		result, err := engine.Apply(item, classification)
		s.metrics.ObserveEvaluation(classification.Kind(), result.Amount, err)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("product_id", product.ID).
				Str("kind", string(classification.Kind())).
				Msg("discount evaluation failed")
			return nil, err
		}

		subtotal := item.Subtotal()
		line := model.QuoteLine{
			ProductID:           product.ID,
			Name:                product.Name,
			UnitPrice:           product.Price,
			Quantity:            reqItem.Quantity,
			Subtotal:            subtotal,
			DiscountAmount:      result.Amount,
			DiscountDescription: result.Description,
			Total:               subtotal.Sub(result.Amount),
		}

		resp.Lines = append(resp.Lines, line)
		resp.Subtotal = resp.Subtotal.Add(line.Subtotal)
		resp.Discount = resp.Discount.Add(line.DiscountAmount)
		resp.Total = resp.Total.Add(line.Total)
	}

	s.logger.Info().
		Str("quote_id", resp.ID.String()).
		Str("kind", resp.DiscountKind).
		Str("mode", resp.Mode).
		Int("line_count", len(resp.Lines)).
		Str("discount", resp.Discount.String()).
		Msg("quote priced")

	return resp, nil
}

func (s *quoteService) Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.EvaluateResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	engine, err := s.engineFor(req.Mode)
	if err != nil {
		return nil, err
	}

	spec := req.Discount
	classification, err := s.resolve(ctx, &spec, nil)
	if err != nil {
		return nil, err
	}

	item := discount.NewItem(req.Name, req.UnitPrice, req.Quantity)
	result, err := engine.Apply(item, classification)
	s.metrics.ObserveEvaluation(classification.Kind(), result.Amount, err)
	if err != nil {
		s.logger.Debug().Err(err).Str("kind", string(classification.Kind())).Msg("discount evaluation failed")
		return nil, err
	}

	return &model.EvaluateResponse{
		Name:                item.Name,
		UnitPrice:           item.UnitPrice,
		Quantity:            item.Quantity,
		DiscountKind:        string(classification.Kind()),
		DiscountAmount:      result.Amount,
		DiscountDescription: result.Description,
		DiscountLabel:       result.Label,
	}, nil
}

// resolve turns an explicit discount or a promo code into a classification.
// With neither, no discount applies.
func (s *quoteService) resolve(ctx context.Context, spec *model.DiscountSpec, promoCode *string) (discount.Classification, error) {
	hasPromo := promoCode != nil && *promoCode != ""

	switch {
	case spec != nil && hasPromo:
		return nil, model.ErrAmbiguousDiscount
	case spec != nil:
		c, err := discount.Parse(spec.Kind, spec.Value)
		if err != nil {
			s.logger.Debug().Err(err).Str("kind", spec.Kind).Msg("invalid discount specification")
			return nil, err
		}
		return c, nil
	case hasPromo:
		return s.resolvePromo(ctx, *promoCode)
	default:
		return discount.None{}, nil
	}
}

func (s *quoteService) resolvePromo(ctx context.Context, code string) (discount.Classification, error) {
	if s.promos == nil {
		s.metrics.ObservePromoLookup(model.ErrUnknownPromoCode)
		return nil, model.ErrUnknownPromoCode
	}

	c, err := s.promos.Resolve(ctx, code)
	s.metrics.ObservePromoLookup(err)
	if err != nil {
		s.logger.Warn().Str("promo_code", code).Err(err).Msg("promo code rejected")
		return nil, err
	}

	s.logger.Debug().Str("promo_code", code).Str("kind", string(c.Kind())).Msg("promo code resolved")
	return c, nil
}

// loadProducts fetches every requested product, failing if any is missing.
func (s *quoteService) loadProducts(ctx context.Context, items []model.QuoteItemRequest) (map[string]model.Product, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to load products")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		s.logger.Warn().Strs("product_ids", missing).Msg("products not found")
		return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, strings.Join(missing, ", "))
	}

	return byID, nil
}

// engineFor returns the engine for a requested mode, or the default when empty.
func (s *quoteService) engineFor(mode string) (*discount.Engine, error) {
	m := s.defaultMode
	if mode != "" {
		parsed, err := discount.ParseMode(mode)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
		}
		m = parsed
	}
	return s.engines[m], nil
}

func (s *quoteService) validateRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return model.NewDomainError(model.ErrCodeValidation,
				fmt.Sprintf("%s failed on the '%s' rule", fe.Namespace(), fe.Tag()))
		}
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return model.NewDomainError(model.ErrCodeValidation, "request is required")
		}
		return fmt.Errorf("failed to validate request: %w", err)
	}
	return nil
}
