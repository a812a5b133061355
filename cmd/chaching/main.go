package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"chaching/internal/api"
	"chaching/internal/cache"
	"chaching/internal/config"
	"chaching/internal/core"
	"chaching/internal/log"
	"chaching/internal/messaging"
	"chaching/internal/query"
	"chaching/internal/services"
	"chaching/internal/session"
	"chaching/internal/transport"
)

const usage = `Usage: chaching <command> [flags]

Commands:
  login               authenticate and persist the session token
  logout              drop the persisted session token
  signup              create a new account (requires a fresh login afterwards)
  whoami              show the authenticated user
  expenses            list expenses (paginated)
  add-expense         record a new expense
  update-expense      rewrite an existing expense
  categories          list categories
  add-category        create a category
  update-category     update a category's name and budget
  payment-methods     list payment methods
  add-payment-method  create a payment method
  stats               show aggregates (per-day, categories, payment-methods)
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliNavigator satisfies session.Navigator; a terminal has no views to
// switch, so transitions are only logged at debug level.
type cliNavigator struct {
	logger *log.Logger
}

func (n *cliNavigator) NavigateTo(route string) {
	n.logger.Debug("Navigation", "route", route)
}

type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *session.Store
	session *session.Manager

	expenses       *services.Expenses
	categories     *services.Categories
	paymentMethods *services.PaymentMethods
	users          *services.Users

	cacheManager *cache.Manager

	stdin  io.Reader
	stdout io.Writer
}

func newApp(stdin io.Reader, stdout io.Writer) (*app, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})

	store, err := session.NewStore(cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	bus := messaging.NewBus()

	client := transport.NewClient(transport.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Tokens:  store,
		Bus:     bus,
		Logger:  logger,
	})

	queryCache := cache.New(256, cfg.CacheStaleTime, cfg.CacheGCTime)
	cacheManager := cache.NewManager()
	cacheManager.Register(queryCache)
	cacheManager.StartCleanup(cfg.CacheGCTime)

	queryClient := query.New(queryCache, cfg.RetryAttempts, logger)

	expenseSvc := api.NewExpenseService(client)
	categorySvc := api.NewCategoryService(client)
	paymentMethodSvc := api.NewPaymentMethodService(client)
	authSvc := api.NewAuthService(client)
	userSvc := api.NewUserService(client)

	nav := &cliNavigator{logger: logger}
	manager := session.NewManager(authSvc, userSvc, store, queryClient, nav, logger)
	manager.Bind(bus)

	return &app{
		cfg:            cfg,
		logger:         logger,
		store:          store,
		session:        manager,
		expenses:       services.NewExpenses(expenseSvc, queryClient, logger),
		categories:     services.NewCategories(categorySvc, queryClient, logger),
		paymentMethods: services.NewPaymentMethods(paymentMethodSvc, queryClient, logger),
		users:          services.NewUsers(userSvc, queryClient),
		cacheManager:   cacheManager,
		stdin:          stdin,
		stdout:         stdout,
	}, nil
}

func (a *app) close() {
	a.cacheManager.Stop()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Closing session store failed", log.FieldError, err.Error())
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return nil
	}

	command, rest := args[0], args[1:]
	if command == "help" || command == "-h" || command == "--help" {
		fmt.Fprint(stdout, usage)
		return nil
	}

	a, err := newApp(stdin, stdout)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	switch command {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.session.Logout(ctx)
	case "signup":
		return a.cmdSignUp(ctx, rest)
	case "whoami":
		return a.cmdWhoAmI(ctx)
	case "expenses":
		return a.cmdExpenses(ctx, rest)
	case "add-expense":
		return a.cmdAddExpense(ctx, rest)
	case "update-expense":
		return a.cmdUpdateExpense(ctx, rest)
	case "categories":
		return a.cmdCategories(ctx)
	case "add-category":
		return a.cmdAddCategory(ctx, rest)
	case "update-category":
		return a.cmdUpdateCategory(ctx, rest)
	case "payment-methods":
		return a.cmdPaymentMethods(ctx)
	case "add-payment-method":
		return a.cmdAddPaymentMethod(ctx, rest)
	case "stats":
		return a.cmdStats(ctx, rest)
	default:
		fmt.Fprint(a.stdout, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("missing required flag: -email")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = a.promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	if err := a.session.Login(ctx, *email, pass); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged in.")
	return nil
}

func (a *app) cmdSignUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" {
		return fmt.Errorf("missing required flags: -name, -email")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = a.promptPassword("Password: ")
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(pass) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	env, err := a.session.SignUp(ctx, api.CreateUserPayload{
		Name:     *name,
		Email:    *email,
		Password: pass,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Account created for %s. Log in to continue.\n", env.Data.Email)
	return nil
}

func (a *app) cmdWhoAmI(ctx context.Context) error {
	user, err := a.users.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *app) cmdExpenses(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("expenses", flag.ContinueOnError)
	from := fs.String("from", "", "start date (yyyy-MM-dd)")
	to := fs.String("to", "", "end date (yyyy-MM-dd)")
	categoryID := fs.Int("category", 0, "filter by category id")
	methodID := fs.Int("method", 0, "filter by payment method id")
	all := fs.Bool("all", false, "follow the page cursor to the end")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := a.expenses.List(api.ExpenseFilter{
		StartDate:       *from,
		EndDate:         *to,
		CategoryID:      *categoryID,
		PaymentMethodID: *methodID,
	})

	if err := list.Load(ctx); err != nil {
		return err
	}
	if *all {
		for list.HasNextPage() {
			if err := list.FetchNextPage(ctx); err != nil {
				return err
			}
		}
	}

	for _, exp := range list.Expenses() {
		category := "-"
		if exp.Category != nil {
			category = exp.Category.Name
		}
		method := "-"
		if exp.PaymentMethod != nil {
			method = exp.PaymentMethod.Name
		}
		fmt.Fprintf(a.stdout, "%-6d %-12s %-24s %10.2f  %s / %s\n",
			exp.ID, exp.ExpenseDate, exp.Title, exp.Amount, category, method)
	}

	meta := list.Meta()
	fmt.Fprintf(a.stdout, "Total: %.2f across %d expenses\n", meta.TotalAmount, meta.TotalCount)
	if list.HasNextPage() {
		fmt.Fprintln(a.stdout, "More pages available; rerun with -all.")
	}
	return nil
}

func (a *app) cmdAddExpense(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-expense", flag.ContinueOnError)
	title := fs.String("title", "", "expense title")
	amount := fs.Float64("amount", 0, "amount")
	categoryID := fs.Int("category", 0, "category id")
	methodID := fs.Int("method", 0, "payment method id")
	date := fs.String("date", "", "expense date (yyyy-MM-dd)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" || *amount <= 0 || *categoryID <= 0 || *methodID <= 0 || *date == "" {
		return fmt.Errorf("missing required flags: -title, -amount, -category, -method, -date")
	}

	env, err := a.expenses.Create(ctx, api.CreateExpensePayload{
		CategoryID:      *categoryID,
		PaymentMethodID: *methodID,
		Title:           *title,
		Amount:          *amount,
		ExpenseDate:     *date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Recorded expense %d: %s %.2f on %s\n",
		env.Data.ID, env.Data.Title, env.Data.Amount, env.Data.ExpenseDate)
	return nil
}

func (a *app) cmdUpdateExpense(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-expense", flag.ContinueOnError)
	id := fs.Int("id", 0, "expense id")
	title := fs.String("title", "", "expense title")
	amount := fs.Float64("amount", 0, "amount")
	categoryID := fs.Int("category", 0, "category id")
	methodID := fs.Int("method", 0, "payment method id")
	date := fs.String("date", "", "expense date (yyyy-MM-dd)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id <= 0 {
		return fmt.Errorf("missing required flag: -id")
	}

	env, err := a.expenses.Update(ctx, api.UpdateExpensePayload{
		ID:              *id,
		CategoryID:      *categoryID,
		PaymentMethodID: *methodID,
		Title:           *title,
		Amount:          *amount,
		ExpenseDate:     *date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Updated expense %d\n", env.Data.ID)
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	categories, err := a.categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.stdout, "%-6d %-24s budget %.2f\n", c.ID, c.Name, c.Budget)
	}
	return nil
}

func (a *app) cmdAddCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-category", flag.ContinueOnError)
	name := fs.String("name", "", "category name")
	budget := fs.Float64("budget", 0, "monthly budget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("missing required flag: -name")
	}

	env, err := a.categories.Create(ctx, api.CreateCategoryPayload{Name: *name, Budget: *budget})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Created category %d: %s\n", env.Data.ID, env.Data.Name)
	return nil
}

func (a *app) cmdUpdateCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-category", flag.ContinueOnError)
	id := fs.Int("id", 0, "category id")
	name := fs.String("name", "", "category name")
	budget := fs.Float64("budget", 0, "monthly budget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id <= 0 || *name == "" {
		return fmt.Errorf("missing required flags: -id, -name")
	}

	env, err := a.categories.Update(ctx, api.UpdateCategoryPayload{
		ID:     *id,
		Name:   *name,
		Budget: *budget,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Updated category %d\n", env.Data.ID)
	return nil
}

func (a *app) cmdPaymentMethods(ctx context.Context) error {
	methods, err := a.paymentMethods.List(ctx)
	if err != nil {
		return err
	}
	for _, m := range methods {
		fmt.Fprintf(a.stdout, "%-6d %s\n", m.ID, m.Name)
	}
	return nil
}

func (a *app) cmdAddPaymentMethod(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-payment-method", flag.ContinueOnError)
	name := fs.String("name", "", "payment method name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("missing required flag: -name")
	}

	env, err := a.paymentMethods.Create(ctx, api.CreatePaymentMethodPayload{Name: *name})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Created payment method %d: %s\n", env.Data.ID, env.Data.Name)
	return nil
}

func (a *app) cmdStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	kind := fs.String("kind", "per-day", "per-day, categories or payment-methods")
	rangeName := fs.String("range", string(core.CurrentWeek), "current_week, current_month, last_week or last_month")
	categoryID := fs.Int("category", 0, "filter per-day stats by category id")
	methodID := fs.Int("method", 0, "filter per-day stats by payment method id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng, err := core.ParseRange(*rangeName)
	if err != nil {
		return err
	}

	switch *kind {
	case "per-day":
		totals, err := a.expenses.PerDay(ctx, services.PerDayFilter{
			Range:           rng,
			CategoryID:      *categoryID,
			PaymentMethodID: *methodID,
		})
		if err != nil {
			return err
		}
		for _, day := range totals {
			fmt.Fprintf(a.stdout, "%-12s %10.2f  (%d expenses)\n",
				day.ExpenseDate, day.TotalAmount, day.Count)
		}
	case "categories":
		stats, err := a.categories.Stats(ctx, rng)
		if err != nil {
			return err
		}
		for _, s := range stats {
			fmt.Fprintf(a.stdout, "%-24s %10.2f / %10.2f  (%3.0f%%)\n",
				s.Name, s.TotalAmount, s.Budget, s.Progress()*100)
		}
	case "payment-methods":
		stats, err := a.paymentMethods.Stats(ctx, rng)
		if err != nil {
			return err
		}
		for _, s := range stats {
			fmt.Fprintf(a.stdout, "%-24s %10.2f\n", s.Name, s.TotalAmount)
		}
	default:
		return fmt.Errorf("unknown stats kind %q", *kind)
	}
	return nil
}

func (a *app) promptPassword(prompt string) (string, error) {
	fmt.Fprint(a.stdout, prompt)
	defer fmt.Fprintln(a.stdout)

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(bytePassword), nil
	}

	// Fallback for pipes and tests.
	scanner := bufio.NewScanner(a.stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return "", fmt.Errorf("no password provided")
}
