package stub

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

func (s *Server) listDishes(c *gin.Context) {
	dishes, err := s.recipes.ListDishes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (s *Server) createDish(c *gin.Context) {
	var body nameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	d, err := s.recipes.CreateDish(c.Request.Context(), body.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) renameDish(c *gin.Context) {
	id, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	var body nameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	d, err := s.recipes.RenameDish(c.Request.Context(), id, body.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDish(c *gin.Context) {
	id, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	if err := s.recipes.DeleteDish(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Dish deleted successfully"})
}

func (s *Server) listRecipes(c *gin.Context) {
	id, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	list, err := s.recipes.ListRecipes(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getRecipe(c *gin.Context) {
	dishID, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	recipeID, ok := intParam(c, "recipe_id")
	if !ok {
		return
	}
	r, err := s.recipes.GetRecipe(c.Request.Context(), dishID, recipeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) createRecipe(c *gin.Context) {
	dishID, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	var draft domain.Recipe
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	r, err := s.recipes.CreateRecipe(c.Request.Context(), dishID, draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) updateRecipe(c *gin.Context) {
	recipeID, ok := intParam(c, "recipe_id")
	if !ok {
		return
	}
	var upd domain.Recipe
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	r, err := s.recipes.UpdateRecipe(c.Request.Context(), recipeID, upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	recipeID, ok := intParam(c, "recipe_id")
	if !ok {
		return
	}
	if err := s.recipes.DeleteRecipe(c.Request.Context(), recipeID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Recipe deleted successfully"})
}

func (s *Server) importURL(c *gin.Context) {
	dishID, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "url query parameter is required"})
		return
	}
	r, err := s.recipes.ImportFromURL(c.Request.Context(), dishID, pageURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) importImage(c *gin.Context) {
	dishID, ok := intParam(c, "dish_id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "file field is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	r, err := s.recipes.ImportFromImage(c.Request.Context(), dishID, fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) listIngredients(c *gin.Context) {
	list, err := s.affinity.ListIngredients(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getIngredient(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	d, err := s.affinity.GetIngredient(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
