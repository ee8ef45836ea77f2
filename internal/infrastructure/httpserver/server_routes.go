package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api")

	cache := api.Group("/cache")
	cache.POST("/invalidate", s.invalidateCache, s.middleware.RateLimit.Handler())
	cache.GET("/invalidate", s.invalidateUsage)
	cache.GET("/status", s.cacheStatus)
	cache.GET("/test", s.cacheTest)
	cache.POST("/test", s.cacheTestUsage)

	debug := api.Group("/debug")
	debug.GET("/pages", s.debugPages)
	debug.GET("/compare", s.debugCompare, s.middleware.Locale.ResolveLocale())

	api.GET("/categories", s.getCategories)
	api.GET("/categories/:slug/posts", s.getPostsByCategory)
	api.GET("/posts/featured", s.getFeaturedPosts)

	localized := api.Group("/:locale", s.middleware.Locale.ResolveLocale())
	localized.GET("/posts", s.getPosts)
	localized.GET("/posts/:slug", s.getPost)
	localized.GET("/pages", s.getPages)
	localized.GET("/pages/*", s.getPage)
	localized.GET("/homepage", s.getHomepage)
	localized.GET("/navigation/:name", s.getNavigation)
}
