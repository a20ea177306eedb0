package game

// SearchController drives the search, list and card views from the
// SearchModel.
type SearchController struct {
	app   *AppController
	model *SearchModel
	views Views
}

// Select looks up the Pokémon starting with char and renders them.
func (c *SearchController) Select(char string) ListSnapshot {
	_, cached := c.model.Search(char)
	if cached {
		c.render(true)
	}
	q, result := c.model.Last()
	return c.app.listSnapshot(q, result)
}

func (c *SearchController) render(cached bool) {
	q, result := c.model.Last()
	c.views.Search.Update(SearchSnapshot{Query: q, Count: len(result), Cached: cached})
	c.views.List.Update(c.app.listSnapshot(q, result))
}
