package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhasantafonte/santafonte-backend/config"
	"github.com/minhasantafonte/santafonte-backend/internal/app/controller"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers groups every HTTP handler set mounted by the router.
type Controllers struct {
	Auth        *controller.AuthController
	Product     *controller.ProductController
	Option      *controller.OptionController
	Cart        *controller.CartController
	Customizer  *controller.CustomizerController
	Sale        *controller.SaleController
	Article     *controller.ArticleController
	Upload      *controller.UploadController
	Admin       *controller.AdminController
	BoardSocket *controller.BoardSocketController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	cartSession    *middleware.CartSession
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	cartSession *middleware.CartSession,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		cartSession:    cartSession,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Santa Fonte API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctl := r.controllers
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/refresh", ctl.Auth.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), ctl.Auth.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), ctl.Auth.GetMe)
			auth.PUT("/password", r.authMiddleware.Authenticate(), ctl.Auth.ChangePassword)
		}

		products := v1.Group("/products")
		{
			products.GET("", ctl.Product.GetCatalog)
			products.GET("/featured", ctl.Product.GetFeatured)
			products.GET("/categories", ctl.Product.GetCategories)
			products.GET("/:id", ctl.Product.GetProductByID)
		}

		options := v1.Group("/options")
		{
			options.GET("", ctl.Option.GetPools)
			options.GET("/base-price", ctl.Option.GetBasePrice)
			options.GET("/:type", ctl.Option.GetPool)
		}

		articles := v1.Group("/articles")
		{
			articles.GET("", ctl.Article.ListArticles)
			articles.GET("/:id", ctl.Article.GetArticle)
		}

		cart := v1.Group("/cart")
		cart.Use(r.cartSession.Identify())
		{
			cart.GET("", ctl.Cart.GetCart)
			cart.DELETE("", ctl.Cart.ClearCart)
			cart.POST("/items", ctl.Cart.AddToCart)
			cart.DELETE("/items/:product_id", ctl.Cart.RemoveFromCart)
			cart.GET("/checkout", ctl.Cart.Checkout)
		}

		customizer := v1.Group("/customizer")
		customizer.Use(r.cartSession.Identify())
		{
			customizer.GET("", ctl.Customizer.GetState)
			customizer.POST("/select", ctl.Customizer.Select)
			customizer.POST("/back", ctl.Customizer.Back)
			customizer.POST("/reset", ctl.Customizer.Reset)
			customizer.POST("/quote", ctl.Customizer.Quote)
			customizer.POST("/commit", ctl.Customizer.Commit)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		{
			admin.GET("/sync-status", ctl.Admin.GetSyncStatus)

			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", ctl.Product.ListProducts)
				adminProducts.GET("/low-stock", ctl.Admin.GetLowStock)
				adminProducts.POST("", ctl.Product.CreateProduct)
				adminProducts.PUT("/:id", ctl.Product.UpdateProduct)
				adminProducts.PATCH("/:id/stock", ctl.Product.AdjustStock)
				adminProducts.DELETE("/:id", ctl.Product.DeleteProduct)
			}

			adminOptions := admin.Group("/options")
			{
				adminOptions.GET("", ctl.Option.ListOptions)
				adminOptions.POST("", ctl.Option.UpsertOption)
				adminOptions.PUT("/base-price", ctl.Option.SetBasePrice)
				adminOptions.PUT("/:id", ctl.Option.UpdateOption)
				adminOptions.DELETE("/:id", ctl.Option.DeleteOption)
			}

			sales := admin.Group("/sales")
			{
				sales.GET("", ctl.Sale.ListSales)
				sales.GET("/board", ctl.Sale.GetBoard)
				sales.GET("/export", ctl.Sale.ExportSales)
				sales.POST("", ctl.Sale.CreateSale)
				sales.PUT("/:id", ctl.Sale.UpdateSale)
				sales.PATCH("/:id/status", ctl.Sale.MoveSale)
				sales.POST("/:id/advance", ctl.Sale.AdvanceSale)
				sales.POST("/:id/retreat", ctl.Sale.RetreatSale)
				sales.DELETE("/:id", ctl.Sale.DeleteSale)
			}

			adminArticles := admin.Group("/articles")
			{
				adminArticles.POST("", ctl.Article.CreateArticle)
				adminArticles.PUT("/:id", ctl.Article.UpdateArticle)
				adminArticles.DELETE("/:id", ctl.Article.DeleteArticle)
			}

			admin.POST("/uploads/presigned-url", ctl.Upload.GeneratePresignedURL)
			admin.GET("/board/ws", ctl.BoardSocket.Connect)
		}
	}

	return router
}
