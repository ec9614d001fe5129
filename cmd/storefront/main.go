package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartstore "electromart/internal/store/cart"
	"electromart/internal/store/favorites"

	"electromart/internal/client"
	"electromart/internal/config"
	"electromart/internal/infra/cache"
)

// 未ログインでもカートは使える。tokenは任意。
type envTokenSource struct {
	token string
}

func (s envTokenSource) Token() (string, bool) {
	return s.token, s.token != ""
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tokens := envTokenSource{token: cfg.AccessToken}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	storage := newStorage(cfg)

	api := client.New(cfg.RemoteAPIBaseURL, tokens, logger)
	catalog := client.NewCatalogClient(api)

	cart := cartstore.NewStore(storage, client.NewCartClient(api), tokens, logger)
	queue := favorites.NewQueue(storage, logger)
	syncer := favorites.NewSyncer(queue, client.NewFavoritesClient(api), tokens, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cart.Load(ctx); err != nil {
		logger.Warn("cart load failed", zap.Error(err))
	}
	if err := queue.Load(ctx); err != nil {
		logger.Warn("favorites load failed", zap.Error(err))
	}
	if err := cart.Sync(ctx); err != nil {
		logger.Warn("cart sync failed", zap.Error(err))
	}

	// 保留中のお気に入り操作は裏で流し続ける
	go syncer.Run(ctx, 10*time.Second)

	lastResults := []client.PartDetail{}

	fmt.Println("electromart storefront")
	fmt.Println("commands: search <q> | add <n> | cart | qty <refaccion_id> <n> | rm <refaccion_id> | clear | fav <refaccion_id> | unfav <refaccion_id> | flush | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "search":
			listing, err := catalog.List(ctx, strings.Join(fields[1:], " "), 1, 20)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			lastResults = listing.Items
			if len(listing.Items) == 0 {
				fmt.Println("(sin resultados)")
				continue
			}
			for i, p := range listing.Items {
				fmt.Printf("%2d. [%s] %s  $%s  (id: %d)\n", i+1, p.PartCode, p.Name, p.Price.StringFixed(2), p.ID)
			}

		case "add":
			if len(fields) != 2 {
				fmt.Println("usage: add <n>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > len(lastResults) {
				fmt.Println("error: no such search result")
				continue
			}
			p := lastResults[n-1]
			cart.AddItem(ctx, p.Summary())
			fmt.Printf("agregado: %s\n", p.Name)

		case "cart":
			items := cart.Items()
			if len(items) == 0 {
				fmt.Println("(carrito vacío)")
				continue
			}
			for _, it := range items {
				fmt.Printf("%-30s x%-3d $%s  (id: %d)\n", it.Part.Name, it.Quantity,
					it.Part.Price.Mul(quantityDec(it.Quantity)).StringFixed(2), it.Part.ID)
			}
			fmt.Printf("articulos: %d\n", cart.TotalItems())
			fmt.Printf("total:     $%s\n", cart.Total().StringFixed(2))

		case "qty":
			if len(fields) != 3 {
				fmt.Println("usage: qty <refaccion_id> <n>")
				continue
			}
			partID, err1 := strconv.ParseInt(fields[1], 10, 64)
			qty, err2 := strconv.ParseInt(fields[2], 10, 64)
			if err1 != nil || err2 != nil {
				fmt.Println("error: invalid number")
				continue
			}
			cart.UpdateQuantity(ctx, partID, qty)

		case "rm":
			partID, ok := parseID(fields, "rm")
			if !ok {
				continue
			}
			cart.RemoveItem(ctx, partID)

		case "clear":
			cart.Clear(ctx)

		case "fav", "unfav":
			if _, ok := tokens.Token(); !ok {
				fmt.Println("error:", favorites.ErrAuthRequired)
				continue
			}
			partID, ok := parseID(fields, fields[0])
			if !ok {
				continue
			}
			kind := favorites.ActionAdd
			if fields[0] == "unfav" {
				kind = favorites.ActionRemove
			}
			if err := queue.Enqueue(ctx, kind, partID); err != nil {
				if errors.Is(err, favorites.ErrDuplicateAction) || errors.Is(err, favorites.ErrProductLocked) {
					fmt.Println("ignorado:", err)
					continue
				}
				fmt.Println("error:", err)
			}

		case "flush":
			if err := syncer.Flush(ctx); err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("pendientes: %d\n", len(queue.Pending()))

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

// REDIS_ADDRがあればredis、無ければプロセス内メモリ。
func newStorage(cfg config.ClientConfig) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryStore()
	}
	return cache.NewRedisStore(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
}

func quantityDec(q int64) decimal.Decimal {
	return decimal.NewFromInt(q)
}

func parseID(fields []string, cmd string) (int64, bool) {
	if len(fields) != 2 {
		fmt.Printf("usage: %s <refaccion_id>\n", cmd)
		return 0, false
	}
	partID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Println("error: invalid number")
		return 0, false
	}
	return partID, true
}
