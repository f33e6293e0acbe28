package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/favorites"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/pkg/kv"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newFavoritesTestHandler(t *testing.T) (*FavoritesHandler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &favorites.Favorite{}))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	manager := session.NewManager(kv.NewMemoryStore(), favorites.NewGormRemote(db), notify.NopNotifier{}, log)

	return NewFavoritesHandler(db, manager, &config.Config{}), db
}

func newToggleContext(t *testing.T, productID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/favorites/"+productID+"/toggle", nil)
	c.Params = gin.Params{{Key: "id", Value: productID}}
	c.Set("session_id", "s1")
	return c, w
}

func TestToggleFavoriteUnknownProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newFavoritesTestHandler(t)

	c, w := newToggleContext(t, "does-not-exist")
	h.ToggleFavorite(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleFavoriteCatalogLookupFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newFavoritesTestHandler(t)

	// A broken catalog backend must stop the toggle, not let it proceed
	// against an unverified product
	require.NoError(t, db.Migrator().DropTable(&catalog.Product{}))

	c, w := newToggleContext(t, "p1")
	h.ToggleFavorite(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
