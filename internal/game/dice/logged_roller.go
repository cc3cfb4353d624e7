package dice

import "go.uber.org/zap"

// Roller rolls against a Source and logs every result at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller. A nil logger disables logging.
//
// Precondition: src must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses and rolls expr, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// RollAbilityScores generates six scores using AbilityScoreExpression.
//
// Postcondition: len(result) == 6 and every score is in [3, 18].
func (r *Roller) RollAbilityScores() []int {
	scores := make([]int, 6)
	for i := range scores {
		scores[i] = r.Roll(AbilityScoreExpression).Total()
	}
	r.logger.Info("rolled ability scores", zap.Ints("scores", scores))
	return scores
}
