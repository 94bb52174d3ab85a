package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"patharwalay/internal/assets"
	"patharwalay/internal/config"
	"patharwalay/internal/repos"
	"patharwalay/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	SettingsHandler *SettingsHandler
	UploadHandler   *UploadHandler
	AuthHandler     *AuthHandler
	PagesHandler    *PagesHandler
	Auth            *services.AuthService
}

func NewDeps(db *mongo.Database, cfg config.Config, store assets.Store) *Deps {
	prodRepo := repos.NewProductRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, store, cfg.SlugStrict)
	settingsSvc := services.NewSettingsService(settingsRepo, store)
	authSvc := services.NewAuthService(settingsRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		SettingsHandler: &SettingsHandler{Settings: settingsSvc},
		UploadHandler:   &UploadHandler{Assets: store},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		PagesHandler:    &PagesHandler{Catalog: catalogSvc, Settings: settingsSvc},
		Auth:            authSvc,
	}
}
