package console

import (
	"context"
	"errors"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// User-facing alert messages, one per failing action.
const (
	alertLoadDishes      = "UNABLE TO LOAD DISHES."
	alertLoadRecipes     = "UNABLE TO LOAD RECIPES FOR THIS DISH."
	alertLoadRecipe      = "UNABLE TO LOAD RECIPE."
	alertDeleteRecipe    = "SERVER REJECTION: UNABLE TO PURGE RECIPE."
	alertSaveRecipe      = "SERVER REJECTION: UNABLE TO SAVE RECIPE."
	alertCreateDish      = "SERVER REJECTION: UNABLE TO CREATE DISH."
	alertImport          = "AI EXTRACTION ERROR."
	alertLoadIngredients = "UNABLE TO LOAD INGREDIENTS."
	alertLoadIngredient  = "UNABLE TO LOAD INGREDIENT PAIRINGS."
)

// report logs a failed action and raises its alert. Navigation and usage
// errors and cancellations are only logged. err is returned unchanged.
func report(ctx context.Context, n domain.Notifier, log *logger.Logger, action, alert string, err error) error {
	if domain.Quiet(err) || errors.Is(err, context.Canceled) {
		log.Debug("%s: %v", action, err)
		return err
	}
	log.Error("%s: %v", action, err)
	if nerr := n.NotifyUrgent(ctx, alert); nerr != nil {
		log.Warn("%s: alert not delivered: %v", action, nerr)
	}
	return err
}
