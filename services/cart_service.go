package services

import (
	"context"
	"sync"

	"storefront-service/logger"
	"storefront-service/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CartRepository is the snapshot store the cart service persists through.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// StockChecker is the backend's batch availability check.
type StockChecker interface {
	CheckStock(ctx context.Context, items []models.StockCheckItem) ([]models.StockIssue, error)
}

// CartService owns the shopper's cart: snapshot load/persist, the mutation
// operations, and the per-session stock-issue state produced by
// reconciliation. Issues are kept in memory only; they are recomputed on
// each checkout attempt.
type CartService struct {
	repo    CartRepository
	checker StockChecker
	sfg     singleflight.Group // collapses concurrent snapshot loads per session

	mu     sync.Mutex
	issues map[string][]models.StockIssue
}

func NewCartService(repo CartRepository, checker StockChecker) *CartService {
	return &CartService{
		repo:    repo,
		checker: checker,
		issues:  make(map[string][]models.StockIssue),
	}
}

// GetCart loads the session's cart. Storage trouble of any kind degrades to
// an empty cart rather than failing the request; the cart is then volatile
// until the next successful save.
//
// Collapsed singleflight callers all receive the same loaded value, so each
// caller gets its own clone: overlapping requests for one session mutate
// independent copies, and the last persisted write wins.
func (s *CartService) GetCart(ctx context.Context, sessionID string) *models.Cart {
	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := s.repo.GetCart(ctx, sessionID)
		if err != nil {
			logger.Warn(ctx, "cart snapshot load failed, using empty cart",
				zap.String("session_id", sessionID), zap.Error(err))
			return models.NewCart(sessionID), nil
		}
		if cart == nil {
			return models.NewCart(sessionID), nil
		}
		return cart, nil
	})
	return v.(*models.Cart).Clone()
}

// persist saves the snapshot, swallowing failures: a cart that cannot be
// written stays usable in the response and simply is not durable.
func (s *CartService) persist(ctx context.Context, cart *models.Cart) {
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		logger.Warn(ctx, "cart snapshot save failed",
			zap.String("session_id", cart.SessionID), zap.Error(err))
	}
}

// AddItem merges the product into the cart and persists on success.
func (s *CartService) AddItem(ctx context.Context, sessionID string, p models.Product, qty int) (models.MutationResult, *models.Cart) {
	cart := s.GetCart(ctx, sessionID)
	res := cart.Add(p, qty)
	if res.Success {
		s.persist(ctx, cart)
	}
	return res, cart
}

// UpdateQuantity sets a line's quantity exactly; zero or below removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID, variantID string, qty int) (models.MutationResult, *models.Cart) {
	cart := s.GetCart(ctx, sessionID)
	res := cart.UpdateQuantity(productID, variantID, qty)
	if res.Success {
		s.persist(ctx, cart)
		if qty <= 0 {
			s.clearIssuesFor(sessionID, productID, variantID)
		}
	}
	return res, cart
}

// RemoveItem deletes the line and drops any stock issue referencing it.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, variantID string) *models.Cart {
	cart := s.GetCart(ctx, sessionID)
	cart.Remove(productID, variantID)
	s.persist(ctx, cart)
	s.clearIssuesFor(sessionID, productID, variantID)
	return cart
}

// Clear empties the cart and all stock issues, called after a completed
// order.
func (s *CartService) Clear(ctx context.Context, sessionID string) {
	if err := s.repo.DeleteCart(ctx, sessionID); err != nil {
		logger.Warn(ctx, "cart snapshot delete failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	s.setIssues(sessionID, nil)
}

// Issues returns the session's outstanding stock issues.
func (s *CartService) Issues(sessionID string) []models.StockIssue {
	s.mu.Lock()
	defer s.mu.Unlock()
	issues := s.issues[sessionID]
	out := make([]models.StockIssue, len(issues))
	copy(out, issues)
	return out
}

func (s *CartService) setIssues(sessionID string, issues []models.StockIssue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(issues) == 0 {
		delete(s.issues, sessionID)
		return
	}
	s.issues[sessionID] = issues
}

func (s *CartService) clearIssuesFor(sessionID, productID, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.issues[sessionID]
	kept := current[:0]
	for _, issue := range current {
		if !issue.References(productID, variantID) {
			kept = append(kept, issue)
		}
	}
	if len(kept) == 0 {
		delete(s.issues, sessionID)
		return
	}
	s.issues[sessionID] = kept
}

// ValidateStock reconciles the cart against live inventory. An empty cart
// short-circuits to valid without a network call and clears prior issues.
// The session's issue list is replaced wholesale with the backend's answer.
//
// A transport or server failure of the check itself fails OPEN: the shopper
// is not blocked from checking out because the validation endpoint
// hiccuped. This is an intentional availability-over-correctness tradeoff;
// do not flip it to fail-closed without revisiting the product decision.
func (s *CartService) ValidateStock(ctx context.Context, sessionID string) models.StockValidation {
	cart := s.GetCart(ctx, sessionID)
	if cart.IsEmpty() {
		s.setIssues(sessionID, nil)
		return models.StockValidation{Valid: true, Issues: []models.StockIssue{}}
	}

	issues, err := s.checker.CheckStock(ctx, cart.StockCheckItems())
	if err != nil {
		logger.Warn(ctx, "stock check failed, proceeding as valid",
			zap.String("session_id", sessionID), zap.Error(err))
		s.setIssues(sessionID, nil)
		return models.StockValidation{Valid: true, Issues: []models.StockIssue{}}
	}

	s.setIssues(sessionID, issues)
	return models.StockValidation{Valid: len(issues) == 0, Issues: issues}
}
