package main

import (
	"bufio"
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"zerobot/config"
	"zerobot/handlers"
	"zerobot/repository"
	"zerobot/serverlog"
	"zerobot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const (
	priceTickInterval = time.Hour
	snapshotInterval  = 24 * time.Hour
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("không tìm thấy file .env, dùng biến môi trường hệ thống")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := checkOperatorPassword(cfg.BotPassword); err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	repoImpl := repository.NewPostgresRepository(db)
	if err := repoImpl.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

	petCatalog, err := config.LoadPetCatalog(cfg.PetsFile)
	if err != nil {
		log.Fatal(err)
	}

	svc := service.NewService(repoImpl, petCatalog)
	logs := serverlog.NewRegistry(cfg.LogDir)
	h := handlers.NewHandler(svc, logs, cfg.ServerList)

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalf("tạo phiên Discord: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildBans |
		discordgo.IntentsMessageContent
	session.State.MaxMessageCount = 1000

	h.Register(session)
	if err := session.Open(); err != nil {
		log.Fatalf("kết nối Discord: %v", err)
	}
	defer func() { _ = session.Close() }()
	log.Printf("Bot đã đăng nhập: %s", session.State.User.Username)

	go svc.RunPriceTicker(ctx, priceTickInterval)
	go h.RunGuildSnapshot(ctx, session, snapshotInterval)

	r := mux.NewRouter()
	r.HandleFunc("/api/price", h.PriceHandler).Methods("GET")
	r.HandleFunc("/api/leaderboard", h.LeaderboardHandler).Methods("GET")

	srv := http.Server{
		Handler:      r,
		Addr:         ":" + cfg.StatsPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	go func() {
		log.Printf("API thống kê chạy trên cổng %s", cfg.StatsPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API thống kê dừng: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Đang tắt bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// checkOperatorPassword gates startup on the configured secret. The
// secret may be stored either as a bcrypt hash or in plain text.
func checkOperatorPassword(secret string) error {
	if secret == "" {
		return nil
	}
	fmt.Print("Nhập mật khẩu: ")
	reader := bufio.NewReader(os.Stdin)
	entered, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("đọc mật khẩu: %w", err)
	}
	entered = strings.TrimRight(entered, "\r\n")

	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") {
		if bcrypt.CompareHashAndPassword([]byte(secret), []byte(entered)) != nil {
			return fmt.Errorf("sai mật khẩu, từ chối khởi động")
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(entered)) != 1 {
		return fmt.Errorf("sai mật khẩu, từ chối khởi động")
	}
	return nil
}
