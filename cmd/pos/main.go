package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"electromart/internal/client"
	"electromart/internal/config"
	"electromart/internal/pos"
)

// 環境変数のaccess tokenをそのまま使う。
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
	// レジは管理者専用
	if cfg.AccessToken == "" {
		fmt.Fprintln(os.Stderr, "ACCESS_TOKEN is required")
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	api := client.New(cfg.RemoteAPIBaseURL, envTokenSource{token: cfg.AccessToken}, logger)
	searcher := pos.NewSearcher(client.NewSearchClient(api), logger)
	session := pos.NewSession(client.NewSalesClient(api), logger)

	ctx := context.Background()
	lastHits := []client.PartHit{}

	fmt.Println("electromart POS")
	fmt.Println("commands: search <q> | add <n> | qty <refaccion_id> <n> | remove <refaccion_id> | ticket | pay <monto> | confirm <monto> | receipt | new | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "search":
			q := strings.Join(fields[1:], " ")
			hits, err := searcher.SearchNow(ctx, q)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			lastHits = hits
			if len(hits) == 0 {
				fmt.Println("(sin resultados)")
				continue
			}
			for i, h := range hits {
				fmt.Printf("%2d. [%s] %s  $%s  (existencias: %d, id: %d)\n",
					i+1, h.PartCode, h.Name, h.Price.StringFixed(2), h.Stock, h.ID)
			}

		case "add":
			n, err := parseIndex(fields, len(lastHits))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			hit := lastHits[n-1]
			session.AddPart(hit)
			fmt.Printf("agregado: %s\n", hit.Name)

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
			session.SetQuantity(partID, qty)

		case "remove":
			if len(fields) != 2 {
				fmt.Println("usage: remove <refaccion_id>")
				continue
			}
			partID, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("error: invalid number")
				continue
			}
			session.Remove(partID)

		case "ticket", "total":
			printTicket(session)

		case "pay":
			tendered, err := parseAmount(fields)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("total:  $%s\n", session.Total().StringFixed(2))
			if short := session.Shortfall(tendered); short.IsPositive() {
				fmt.Printf("falta:  $%s\n", short.StringFixed(2))
				continue
			}
			fmt.Printf("cambio: $%s\n", session.Change(tendered).StringFixed(2))

		case "confirm":
			tendered, err := parseAmount(fields)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if short := session.Shortfall(tendered); short.IsPositive() {
				fmt.Printf("falta: $%s\n", short.StringFixed(2))
				continue
			}
			receipt, err := session.Confirm(ctx, tendered)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			printReceipt(receipt)

		case "receipt":
			r, ok := session.LastReceipt()
			if !ok {
				fmt.Println("(sin venta confirmada)")
				continue
			}
			printReceipt(r)

		case "new":
			session.NewSale()
			fmt.Println("nueva venta")

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func parseIndex(fields []string, max int) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("usage: add <n>")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("no such search result: %s", fields[1])
	}
	return n, nil
}

func parseAmount(fields []string) (decimal.Decimal, error) {
	if len(fields) != 2 {
		return decimal.Zero, fmt.Errorf("usage: %s <monto>", fields[0])
	}
	amount, err := decimal.NewFromString(fields[1])
	if err != nil || amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", fields[1])
	}
	return amount, nil
}

func printTicket(session *pos.Session) {
	lines := session.Lines()
	if len(lines) == 0 {
		fmt.Println("(ticket vacío)")
		return
	}
	for _, l := range lines {
		fmt.Printf("%-30s x%-3d $%s\n", l.Name, l.Quantity, l.Subtotal().StringFixed(2))
	}
	fmt.Printf("subtotal: $%s\n", session.Subtotal().StringFixed(2))
	fmt.Printf("IVA:      $%s\n", session.VAT().StringFixed(2))
	fmt.Printf("total:    $%s\n", session.Total().StringFixed(2))
}

func printReceipt(r pos.Receipt) {
	fmt.Println("---- venta registrada ----")
	for _, l := range r.Lines {
		fmt.Printf("%-30s x%-3d $%s\n", l.Name, l.Quantity, l.Subtotal().StringFixed(2))
	}
	fmt.Printf("subtotal: $%s\n", r.Subtotal.StringFixed(2))
	fmt.Printf("IVA:      $%s\n", r.VAT.StringFixed(2))
	fmt.Printf("total:    $%s\n", r.Total.StringFixed(2))
	fmt.Printf("pago:     $%s\n", r.Tendered.StringFixed(2))
	fmt.Printf("cambio:   $%s\n", r.Change.StringFixed(2))
	fmt.Printf("folios:   %v\n", r.SaleIDs)
}
