// backoffice es el cliente de línea de comandos del back-office de la
// tienda: inicia sesión contra la plataforma, lista y busca recursos y
// ejecuta borrados masivos con aislamiento de fallos.
//
// Uso:
//
//	backoffice login <usuario>
//	backoffice logout
//	backoffice orders   [-page N] [-size N] [-status S] [-search Q]
//	backoffice products [-page N] [-size N] [-status S] [-search Q]
//	backoffice customers [-page N] [-size N] [-search Q]
//	backoffice categories [filtro]
//	backoffice delete-products <sku> [sku...]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Tienda-backoffice/internal/application/bulkop"
	"github.com/jhoicas/Tienda-backoffice/internal/application/session"
	"github.com/jhoicas/Tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/category"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
	"github.com/jhoicas/Tienda-backoffice/internal/infrastructure/keystore"
	"github.com/jhoicas/Tienda-backoffice/internal/infrastructure/rest"
	"github.com/jhoicas/Tienda-backoffice/pkg/config"
	"github.com/jhoicas/Tienda-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	restCfg := rest.Config{BaseURL: cfg.Platform.BaseURL, Timeout: cfg.Platform.Timeout}
	store := keystore.NewFileStore(cfg.Store.Path())
	broker := session.NewBroker(rest.NewAuthGateway(restCfg), store, log)
	client := rest.NewClient(restCfg, broker, log)

	orders := rest.NewOrderGateway(client)
	products := rest.NewProductGateway(client)
	customers := rest.NewCustomerGateway(client)
	categories := rest.NewCategoryGateway(client)
	bulkDelete := usecase.NewProductBulkDeleteUseCase(products, bulkop.NewCoordinator(log))

	// Cualquier 401 observado por un gateway termina aquí: se avisa una sola
	// vez y el usuario vuelve al estado no autenticado.
	broker.OnInvalidate(func() {
		fmt.Fprintln(os.Stderr, "La sesión expiró; vuelve a iniciar sesión con `backoffice login`.")
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Args[1] != "login" {
		if _, err := broker.Restore(); err != nil {
			log.Warn().Err(err).Msg("no se pudo restaurar la sesión")
		}
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, broker, os.Args[2:])
	case "logout":
		err = broker.Logout()
	case "orders":
		err = runOrders(ctx, orders, os.Args[2:])
	case "products":
		err = runProducts(ctx, products, os.Args[2:])
	case "customers":
		err = runCustomers(ctx, customers, os.Args[2:])
	case "categories":
		err = runCategories(ctx, categories, os.Args[2:])
	case "delete-products":
		err = runDeleteProducts(ctx, bulkDelete, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Uso: backoffice <login|logout|orders|products|customers|categories|delete-products> [opciones]")
}

func runLogin(ctx context.Context, broker *session.Broker, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: backoffice login <usuario>")
	}
	username := args[0]
	fmt.Fprint(os.Stderr, "Contraseña: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("leer contraseña: %w", err)
	}
	s, err := broker.Login(ctx, username, strings.TrimSpace(password))
	if err != nil {
		return err
	}
	fmt.Printf("Sesión iniciada como %s\n", s.Username)
	return nil
}

// listFlags opciones comunes de los listados.
func listFlags(name string, args []string, withStatus bool) (gateway.ListQuery, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	page := fs.Int("page", 1, "página (desde 1)")
	size := fs.Int("size", 20, "tamaño de página")
	search := fs.String("search", "", "búsqueda libre")
	status := ""
	if withStatus {
		fs.StringVar(&status, "status", "", "filtro de estado")
	}
	if err := fs.Parse(args); err != nil {
		return gateway.ListQuery{}, err
	}
	return gateway.ListQuery{Page: *page, PageSize: *size, Search: *search, Status: status}, nil
}

func runOrders(ctx context.Context, g gateway.OrderGateway, args []string) error {
	q, err := listFlags("orders", args, true)
	if err != nil {
		return err
	}
	res, err := g.List(ctx, q)
	if err != nil {
		return err
	}
	for _, o := range res.Items {
		fmt.Printf("%-12s %-12s %-28s %10s %s\n", o.IncrementID, o.Status, o.CustomerEmail, o.GrandTotal.StringFixed(2), o.Currency)
	}
	printPage(res.CurrentPage, res.TotalPages, res.TotalCount)
	return nil
}

func runProducts(ctx context.Context, g gateway.ProductGateway, args []string) error {
	q, err := listFlags("products", args, true)
	if err != nil {
		return err
	}
	res, err := g.List(ctx, q)
	if err != nil {
		return err
	}
	for _, p := range res.Items {
		estado := "activo"
		if p.Status == entity.ProductStatusDisabled {
			estado = "inactivo"
		}
		fmt.Printf("%-24s %-40s %10s %s\n", p.SKU, p.Name, p.Price.StringFixed(2), estado)
	}
	printPage(res.CurrentPage, res.TotalPages, res.TotalCount)
	return nil
}

func runCustomers(ctx context.Context, g gateway.CustomerGateway, args []string) error {
	q, err := listFlags("customers", args, false)
	if err != nil {
		return err
	}
	res, err := g.List(ctx, q)
	if err != nil {
		return err
	}
	for _, c := range res.Items {
		fmt.Printf("%-8d %-32s %s\n", c.ID, c.Email, c.FullName())
	}
	printPage(res.CurrentPage, res.TotalPages, res.TotalCount)
	return nil
}

func runCategories(ctx context.Context, g gateway.CategoryGateway, args []string) error {
	tree, err := g.Tree(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		filtro := strings.Join(args, " ")
		tree = category.Filter(tree, filtro)
		if tree == nil {
			fmt.Printf("Sin categorías que coincidan con %q\n", filtro)
			return nil
		}
	}
	printCategory(tree, 0)
	return nil
}

func printCategory(node *entity.Category, depth int) {
	marca := " "
	if !node.Active {
		marca = "·"
	}
	fmt.Printf("%s%s %s (%d productos)\n", strings.Repeat("  ", depth), marca, node.Name, node.ProductCount)
	for _, child := range node.Children {
		printCategory(child, depth+1)
	}
}

func runDeleteProducts(ctx context.Context, uc *usecase.ProductBulkDeleteUseCase, skus []string) error {
	if len(skus) == 0 {
		return fmt.Errorf("uso: backoffice delete-products <sku> [sku...]")
	}
	plan, err := uc.Execute(ctx, skus)
	if err != nil {
		return err
	}
	for _, item := range plan.Items {
		if item.Clean() {
			fmt.Printf("%s: eliminado\n", item.ID)
			continue
		}
		fmt.Printf("%s: con fallos\n", item.ID)
		for _, s := range item.SubSteps {
			if !s.OK() {
				fmt.Printf("    %s: %v\n", s.Step, s.Err)
			}
		}
		if !item.Primary.OK() {
			fmt.Printf("    %s: %v\n", item.Primary.Step, item.Primary.Err)
		}
	}
	clean, withFailure := plan.Summary()
	fmt.Printf("%d procesados, %d con fallos\n", clean+withFailure, withFailure)
	return nil
}

func printPage(current, total, count int) {
	fmt.Printf("— página %d de %d (%d en total)\n", current, total, count)
}
