package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oklog/ulid/v2"
	"github.com/srinathgs/mysqlstore"
)

const sessionCookieName = "drystream_session"

var (
	db           *sqlx.DB
	sessionStore sessions.Store
	// for use ULID
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func getEnv(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func connectDB() (*sqlx.DB, error) {
	config := mysql.NewConfig()
	config.Net = "tcp"
	config.Addr = getEnv("DRY_DB_HOST", "127.0.0.1") + ":" + getEnv("DRY_DB_PORT", "3306")
	config.User = getEnv("DRY_DB_USER", "drystream")
	config.Passwd = getEnv("DRY_DB_PASSWORD", "drystream")
	config.DBName = getEnv("DRY_DB_NAME", "drystream")
	config.ParseTime = true
	// updates report matched rows, so zero means the row is absent
	config.ClientFoundRows = true

	dsn := config.FormatDSN()
	return sqlx.Open("mysql", dsn)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func main() {
	// .env is optional; real env vars win either way
	godotenv.Load()

	e := echo.New()
	e.Logger.SetLevel(log.INFO)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{getEnv("DRY_CORS_ORIGIN", "http://localhost:3000")},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Backend is running.")
	})

	e.POST("/api/register", apiRegisterHandler)
	e.POST("/api/login", apiLoginHandler)
	e.GET("/api/me", apiMeHandler)
	e.POST("/api/logout", apiLogoutHandler)

	admin := e.Group("/api/admin", adminRequired)
	admin.GET("/stats", apiAdminStatsHandler)
	admin.GET("/series", apiAdminSeriesListHandler)
	admin.POST("/series", apiAdminSeriesCreateHandler)
	admin.GET("/series/:seriesID", apiAdminSeriesGetHandler)
	admin.PUT("/series/:seriesID", apiAdminSeriesUpdateHandler)
	admin.DELETE("/series/:seriesID", apiAdminSeriesDeleteHandler)
	admin.GET("/series/:seriesID/episodes", apiAdminEpisodeListHandler)
	admin.POST("/series/:seriesID/episodes", apiAdminEpisodeCreateHandler)
	admin.PUT("/episodes/:episodeID", apiAdminEpisodeUpdateHandler)
	admin.DELETE("/episodes/:episodeID", apiAdminEpisodeDeleteHandler)
	admin.GET("/phouses", apiAdminPhouseListHandler)
	admin.POST("/phouses", apiAdminPhouseCreateHandler)
	admin.PUT("/phouses/:phouseID", apiAdminPhouseUpdateHandler)
	admin.DELETE("/phouses/:phouseID", apiAdminPhouseDeleteHandler)
	admin.GET("/producers", apiAdminProducerListHandler)
	admin.POST("/producers", apiAdminProducerCreateHandler)
	admin.PUT("/producers/:producerID", apiAdminProducerUpdateHandler)
	admin.DELETE("/producers/:producerID", apiAdminProducerDeleteHandler)
	admin.GET("/collaborations", apiAdminCollaborationListHandler)
	admin.POST("/collaborations", apiAdminCollaborationCreateHandler)
	admin.DELETE("/collaborations", apiAdminCollaborationDeleteHandler)
	admin.GET("/contracts", apiAdminContractListHandler)
	admin.POST("/contracts", apiAdminContractCreateHandler)
	admin.PUT("/contracts/:contractID", apiAdminContractUpdateHandler)
	admin.DELETE("/contracts/:contractID", apiAdminContractDeleteHandler)
	admin.GET("/viewers", apiAdminViewerListHandler)
	admin.GET("/viewers/:accountID", apiAdminViewerGetHandler)
	admin.PUT("/viewers/:accountID", apiAdminViewerUpdateHandler)
	admin.GET("/feedback", apiAdminFeedbackListHandler)
	admin.DELETE("/feedback", apiAdminFeedbackDeleteHandler)
	admin.GET("/viewer-growth", apiAdminViewerGrowthHandler)
	admin.GET("/revenue-growth", apiAdminRevenueGrowthHandler)
	admin.GET("/history", apiAdminHistoryHandler)
	admin.GET("/reports/q1", apiReportQ1Handler)
	admin.GET("/reports/q2", apiReportQ2Handler)
	admin.GET("/reports/q3", apiReportQ3Handler)
	admin.GET("/reports/q4", apiReportQ4Handler)
	admin.GET("/reports/q5", apiReportQ5Handler)
	admin.GET("/reports/q6", apiReportQ6Handler)

	viewer := e.Group("/api/viewer", viewerRequired)
	viewer.GET("/series", apiViewerSeriesListHandler)
	viewer.GET("/series/:seriesID", apiViewerSeriesDetailHandler)
	viewer.GET("/recommendations", apiViewerRecommendationsHandler)
	viewer.GET("/series/:seriesID/feedback", apiViewerFeedbackGetHandler)
	viewer.POST("/series/:seriesID/feedback", apiViewerFeedbackSubmitHandler)
	viewer.DELETE("/series/:seriesID/feedback", apiViewerFeedbackDeleteHandler)
	viewer.GET("/my-feedback", apiViewerMyFeedbackHandler)
	viewer.GET("/profile", apiViewerProfileGetHandler)
	viewer.PUT("/profile", apiViewerProfileUpdateHandler)
	viewer.POST("/change-password", apiViewerChangePasswordHandler)
	viewer.GET("/security-question", apiViewerSecurityQuestionHandler)

	var err error
	db, err = connectDB()
	if err != nil {
		e.Logger.Fatalf("failed to connect db: %v", err)
		return
	}
	db.SetMaxOpenConns(10)
	defer db.Close()

	sessionStore, err = mysqlstore.NewMySQLStoreFromConnection(
		db.DB, "sessions", "/", 86400, []byte(getEnv("DRY_SESSION_SECRET", "a-hard-to-guess-string")),
	)
	if err != nil {
		e.Logger.Fatalf("failed to initialize session store: %v", err)
		return
	}

	port := getEnv("SERVER_APP_PORT", "5000")
	e.Logger.Infof("starting drystream server on : %s ...", port)
	serverPort := fmt.Sprintf(":%s", port)
	e.Logger.Fatal(e.Start(serverPort))
}
