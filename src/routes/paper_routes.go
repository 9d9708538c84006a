package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// PaperRoutes sets up paper and review routes.
func PaperRoutes(app *fiber.App) {
	papers := app.Group("/api/v1/papers", middleware.ProtectRoute)

	papers.Post("/", controllers.CreatePaper)
	papers.Get("/", controllers.GetMyPapers)
	papers.Get("/feed", controllers.GetPaperFeed)
	papers.Get("/search", controllers.SearchPapers)
	papers.Post("/upload", controllers.UploadPaperFile)
	papers.Put("/:paperId", controllers.UpdatePaper)
	papers.Delete("/:paperId", controllers.DeletePaper)

	papers.Get("/:paperId/reviews", controllers.GetPaperReviews)
	papers.Post("/:paperId/reviews", controllers.AddReview)

	reviews := app.Group("/api/v1/reviews", middleware.ProtectRoute)
	reviews.Post("/requests", controllers.CreateReviewRequest)
	reviews.Get("/requests", controllers.GetMyReviewRequests)
}
