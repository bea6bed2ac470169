package main

import (
	"flag"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gera carga concorrente no endpoint de checkout para observar o
// comportamento do guard de estoque sob disputa (nenhum oversell esperado:
// vencedores recebem 201, perdedores 400 com insufficient stock).
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	token := flag.String("token", "", "bearer token of an authenticated user")
	productID := flag.String("product", "", "product id to buy")
	buyers := flag.Int("buyers", 50, "number of concurrent buyers")
	quantity := flag.Int("quantity", 1, "quantity per checkout")
	flag.Parse()

	if *token == "" || *productID == "" {
		log.Fatal("both -token and -product are required")
	}

	client := resty.New().
		SetBaseURL(*baseURL).
		SetAuthToken(*token).
		SetTimeout(30 * time.Second)

	body := map[string]any{
		"items": []map[string]any{
			{"product_id": *productID, "quantity": *quantity},
		},
	}

	var created, outOfStock, conflicts, failures int64
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < *buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.R().SetBody(body).Post("/order/checkout")
			if err != nil {
				atomic.AddInt64(&failures, 1)
				return
			}
			switch resp.StatusCode() {
			case http.StatusCreated:
				atomic.AddInt64(&created, 1)
			case http.StatusBadRequest:
				atomic.AddInt64(&outOfStock, 1)
			case http.StatusConflict:
				atomic.AddInt64(&conflicts, 1)
			default:
				atomic.AddInt64(&failures, 1)
			}
		}()
	}
	wg.Wait()

	log.Printf("🏁 %d buyers in %s | created=%d out_of_stock=%d conflicts=%d failures=%d",
		*buyers, time.Since(start).Round(time.Millisecond), created, outOfStock, conflicts, failures)
}
