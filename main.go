package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-range/api"
	api_i "github.com/beka-birhanu/vinom-range/api/i"
	"github.com/beka-birhanu/vinom-range/api/identity"
	movementapi "github.com/beka-birhanu/vinom-range/api/movement"
	"github.com/beka-birhanu/vinom-range/config"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/infrastruture/history"
	logger "github.com/beka-birhanu/vinom-range/infrastruture/log"
	"github.com/beka-birhanu/vinom-range/infrastruture/repo"
	"github.com/beka-birhanu/vinom-range/infrastruture/token"
	"github.com/beka-birhanu/vinom-range/service"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient         *mongo.Client
	redisClient         *redis.Client
	board               *grid.Grid
	userRepo            i.UserRepo
	moveHistory         i.MoveHistory
	rangeSessionManager i.RangeSessionManager
	rangeController     api_i.Controller
	jwtTokenizer        i.Tokenizer
	authService         i.Authenticator
	authController      api_i.Controller
	router              *api.Router
	appLogger           i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initUserRepo(ctx context.Context, client *mongo.Client) {
	r := repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	userRepo = r
	appLogger.Info("User repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMoveHistory(client *redis.Client) {
	moveHistory = history.NewRedisMoveHistory(client, &history.Options{
		Prefix: "vinom-range",
		TTL:    time.Duration(config.Envs.HistoryTTLSeconds) * time.Second,
	})
	appLogger.Info("Move history initialized")
}

// initGrid uses the configured layout when there is one, otherwise rolls a board.
func initGrid() {
	var err error
	if len(config.Envs.GridLayout) > 0 {
		board, err = grid.FromRows(config.Envs.GridLayout)
	} else {
		var rng *rand.Rand
		if config.Envs.GridSeed != 0 {
			rng = rand.New(rand.NewSource(config.Envs.GridSeed))
		}
		board, err = grid.New(config.Envs.GridSize, config.Envs.GridDensity, rng)
	}
	if err != nil {
		appLogger.Error(fmt.Sprintf("Building grid: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Grid initialized (%dx%d, %d blocked)", board.Size(), board.Size(), board.Blocked().Size()))
}

func initRangeSessionManager() {
	sessionLogger, err := logger.New("RANGE-SESSION", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating range session logger: %v", err))
		os.Exit(1)
	}

	rangeSessionManager, err = service.NewRangeSessionManager(&service.Config{
		Grid:    board,
		Budget:  config.Envs.MovementBudget,
		History: moveHistory,
		Players: userRepo,
		Logger:  sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating range session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Range session manager initialized")
}

func initRangeController() {
	rangeController = movementapi.NewRangeController(rangeSessionManager)
	appLogger.Info("Range controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, rangeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initUserRepo(ctx, mongoClient)

	initRedis(ctx)
	defer redisClient.Close()
	initMoveHistory(redisClient)

	initGrid()
	initRangeSessionManager()
	initRangeController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
