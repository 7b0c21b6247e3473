package service

import (
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/auth"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/catalog"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/editor"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/management"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/dashboard"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/progress"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/purchase"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/rating"
)

type Collection struct {
	Auth       *auth.AuthService
	Catalog    *catalog.CatalogService
	Editor     *editor.EditorService
	Management *management.ManagementService
	Purchase   *purchase.PurchaseService
	Dashboard  *dashboard.DashboardService
	Progress   *progress.ProgressService
	Rating     *rating.RatingService
}
