package recipe

import "errors"

// Domain errors for recipe history and suggestions
var (
	ErrRecipeNameRequired = errors.New("recipe name is required")
	ErrRecipeJSONRequired = errors.New("recipe snapshot must not be empty")
)
