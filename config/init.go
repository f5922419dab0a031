package config

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"stayr/services"
)

// App giữ các thành phần đã khởi tạo, inject vào routes và jobs.
type App struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Melody     *melody.Melody
	Cron       *cron.Cron
}

// InitApp khởi tạo router, database, redis và các thành phần chung
func InitApp() (*App, error) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	LoadEnv()

	db, err := ConnectDB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	rdb, err := ConnectRedis()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	cld, err := ConnectCloudinary()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}

	log.Println("All components initialized successfully")

	return &App{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		Cloudinary: cld,
		Melody:     melody.New(),
		Cron:       cron.New(),
	}, nil
}

// InitWebSocket gắn endpoint websocket cho notification broadcast.
// Handshake đọc token từ header hoặc query, session giữ userID để
// broadcast lọc theo người nhận.
func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		userID, _, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "mess": "Invalid token"})
			return
		}

		m.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{"userID": userID})
	})
	log.Println("WebSocket initialized successfully")
}
