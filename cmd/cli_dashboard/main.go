package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"johar-connect/internal/apiclient"
	"johar-connect/internal/app"
	"johar-connect/internal/config"
	"johar-connect/internal/domain"
	"johar-connect/internal/session"
	"johar-connect/internal/storage"
)

// menuNavigator recuerda la última ruta pedida por el evento 401.
type menuNavigator struct {
	mu      sync.Mutex
	pending string
}

func (n *menuNavigator) Navigate(path string) {
	n.mu.Lock()
	n.pending = path
	n.mu.Unlock()
}

func (n *menuNavigator) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := n.pending
	n.pending = ""
	return p
}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	store, closeStore, err := storage.Open(ctx, cfg, logger.Named("storage"))
	if err != nil {
		log.Fatalf("abrir almacenamiento: %v", err)
	}
	defer closeStore()

	nav := &menuNavigator{}
	a, err := app.New(ctx, cfg, store, logger, nav)
	if err != nil {
		log.Fatalf("iniciar aplicación: %v", err)
	}
	a.Session.Subscribe(func(s session.State) {
		fmt.Printf("\n[sesión] estado: %s\n", s)
	})

	fmt.Printf("===== Johar Connect (%s) =====\n", a.API.BaseURL())
	for {
		if path := nav.take(); path == cfg.LoginPath {
			fmt.Println("\nLa sesión expiró o fue revocada. Vuelve a iniciar sesión.")
		}
		if a.Session.State() == session.Anonymous {
			if quit := loginMenu(ctx, reader, a); quit {
				return
			}
			continue
		}
		if quit := mainMenu(ctx, reader, a); quit {
			return
		}
	}
}

func loginMenu(ctx context.Context, reader *bufio.Reader, a *app.App) bool {
	fmt.Println("\n--- Acceso ---")
	fmt.Println("[1] Iniciar sesión")
	fmt.Println("[2] Registrarse")
	fmt.Println("[3] Salir")
	switch prompt(reader, "Selección: ") {
	case "1":
		creds := domain.Credentials{
			Email:    prompt(reader, "Email: "),
			Password: prompt(reader, "Contraseña: "),
		}
		user, err := a.SignIn(ctx, creds)
		if err != nil {
			printErr("iniciar sesión", err)
			return false
		}
		fmt.Printf("Bienvenido, %s (%s)\n", user.Name, user.Role)
	case "2":
		in := domain.RegisterInput{
			Email:    prompt(reader, "Email: "),
			Name:     prompt(reader, "Nombre: "),
			Password: prompt(reader, "Contraseña: "),
			Role:     domain.Role(prompt(reader, "Rol [tourist/guide/vendor/official]: ")),
		}
		user, err := a.SignUp(ctx, in)
		if err != nil {
			printErr("registrarse", err)
			return false
		}
		fmt.Printf("Cuenta creada para %s\n", user.Email)
	case "3":
		return true
	default:
		fmt.Println("Selección inválida.")
	}
	return false
}

func mainMenu(ctx context.Context, reader *bufio.Reader, a *app.App) bool {
	if user, ok := a.Session.CurrentUser(); ok {
		fmt.Printf("\n--- Panel de %s (%s) ---\n", user.Name, user.Role)
	} else {
		fmt.Println("\n--- Panel (sesión restaurada, perfil no cargado) ---")
	}
	fmt.Println("[1] Analytics")
	fmt.Println("[2] Sentimiento")
	fmt.Println("[3] Blockchain")
	fmt.Println("[4] Proveedores")
	fmt.Println("[5] Marketplace")
	fmt.Println("[6] Feedback")
	fmt.Println("[7] Gobernanza")
	fmt.Println("[8] Mi perfil")
	fmt.Println("[9] Cerrar sesión")
	fmt.Println("[0] Salir")

	api := a.API
	switch prompt(reader, "Selección: ") {
	case "1":
		show(api.Analytics.GetAnalytics(ctx))
		show(api.Analytics.GetTrends(ctx, prompt(reader, "Periodo [daily/weekly/monthly]: ")))
	case "2":
		show(api.Sentiment.GetAnalysis(ctx))
		if text := prompt(reader, "Texto a analizar (vacío para omitir): "); text != "" {
			show(api.Sentiment.AnalyzeText(ctx, text))
		}
	case "3":
		show(api.Blockchain.GetNetworkData(ctx))
		show(api.Blockchain.GetContracts(ctx))
		show(api.Blockchain.GetTransactions(ctx))
	case "4":
		show(api.Providers.GetProviders(ctx))
		if id := prompt(reader, "ID a verificar (vacío para omitir): "); id != "" {
			show(api.Providers.VerifyProvider(ctx, id))
		}
	case "5":
		marketplaceMenu(ctx, reader, api)
	case "6":
		show(api.Feedback.GetFeedbacks(ctx))
		rating, _ := strconv.Atoi(prompt(reader, "Valoración 1-5 (vacío para omitir): "))
		if rating > 0 {
			show(api.Feedback.SubmitFeedback(ctx, domain.FeedbackInput{
				Rating:   rating,
				Comment:  prompt(reader, "Comentario: "),
				Category: domain.FeedbackCategory(prompt(reader, "Categoría [general/guide/...]: ")),
			}))
		}
	case "7":
		show(api.Governance.GetData(ctx))
		if id := prompt(reader, "ID de propuesta a votar (vacío para omitir): "); id != "" {
			vote := domain.VoteType(prompt(reader, "Voto [for/against/abstain]: "))
			show(api.Governance.Vote(ctx, id, domain.VoteInput{VoteType: vote}))
		}
	case "8":
		show(api.Auth.Me(ctx))
	case "9":
		if err := a.SignOut(ctx); err != nil {
			printErr("cerrar sesión", err)
		}
	case "0":
		return true
	default:
		fmt.Println("Selección inválida.")
	}
	return false
}

func marketplaceMenu(ctx context.Context, reader *bufio.Reader, api *apiclient.Client) {
	products, err := api.Marketplace.GetProducts(ctx)
	if err != nil {
		printErr("listar productos", err)
		return
	}
	for i, p := range products {
		fmt.Printf("[%d] %s - ₹%s (stock %d)\n", i+1, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	choice := prompt(reader, "Producto a comprar (vacío para ver pedidos): ")
	if choice == "" {
		show(api.Marketplace.GetOrders(ctx))
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(products) {
		fmt.Println("Selección inválida.")
		return
	}
	qty, err := strconv.Atoi(prompt(reader, "Cantidad: "))
	if err != nil || qty <= 0 {
		fmt.Println("Cantidad inválida.")
		return
	}
	show(api.Marketplace.CreateOrder(ctx, domain.OrderInput{
		Products:        []domain.OrderItem{{ProductID: products[idx-1].ID, Quantity: qty, Price: products[idx-1].Price}},
		DeliveryAddress: prompt(reader, "Dirección de entrega: "),
		PaymentMethod:   domain.PaymentUPI,
	}))
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func show[T any](v T, err error) {
	if err != nil {
		printErr("request", err)
		return
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(out))
}

func printErr(op string, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		fmt.Printf("%s: no autorizado\n", op)
		return
	}
	if code := apiclient.StatusCode(err); code != 0 {
		fmt.Printf("%s: el servidor respondió %d\n", op, code)
		return
	}
	fmt.Printf("%s: %v\n", op, err)
}
