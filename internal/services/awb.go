package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/apperrors"
	"github.com/swiftship/courier-backend/internal/models"
	"github.com/swiftship/courier-backend/internal/storage"
	"github.com/swiftship/courier-backend/internal/utils"
)

// AWB layout: 2-char route prefix, 2 letters, 3 digits, 2 letters,
// 8 alphanumeric. 17 characters total.
var awbPatterns = map[models.Route]*regexp.Regexp{
	models.RouteOutbound: awbPattern(models.RouteOutbound),
	models.RouteReverse:  awbPattern(models.RouteReverse),
}

func awbPattern(route models.Route) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%s[A-Z]{2}[0-9]{3}[A-Z]{2}[A-Z0-9]{8}$`, route.AWBPrefix()))
}

// AWBGenerator issues globally unique tracking codes. Codes are random per
// request rather than sequential so issuance has no single point of
// serialization; uniqueness comes from a bounded check-then-insert retry.
type AWBGenerator struct {
	store       storage.Store
	maxAttempts int
	log         *zap.Logger
}

// NewAWBGenerator creates a tracking-code generator over the given store.
func NewAWBGenerator(store storage.Store, maxAttempts int, log *zap.Logger) *AWBGenerator {
	return &AWBGenerator{store: store, maxAttempts: maxAttempts, log: log}
}

// IssueUnique returns a tracking code for the route that matches the route's
// format and is absent from the store at issuance time. Repeated collisions
// indicate a saturated code space or a store problem and are fatal.
func (g *AWBGenerator) IssueUnique(ctx context.Context, route models.Route) (string, error) {
	pattern := awbPatterns[route]

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		code, err := g.synthesize(route)
		if err != nil {
			return "", fmt.Errorf("failed to synthesize tracking code: %w", err)
		}
		if !pattern.MatchString(code) {
			// Guards against format drift in the synthesizer itself.
			return "", fmt.Errorf("synthesized code %q does not match route format", code)
		}

		_, err = g.store.GetBookingByAWB(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", &apperrors.StorageError{Op: "awb uniqueness check", Err: err}
		}

		g.log.Warn("AWB collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt))
	}

	return "", apperrors.ErrAWBGenerationExhausted
}

func (g *AWBGenerator) synthesize(route models.Route) (string, error) {
	l1, err := utils.RandomLetters(2)
	if err != nil {
		return "", err
	}
	d, err := utils.RandomDigits(3)
	if err != nil {
		return "", err
	}
	l2, err := utils.RandomLetters(2)
	if err != nil {
		return "", err
	}
	tail, err := utils.RandomAlphanumeric(8)
	if err != nil {
		return "", err
	}
	return route.AWBPrefix() + l1 + d + l2 + tail, nil
}
