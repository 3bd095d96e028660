package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tonightlabs/tonight/internal/config"
	"github.com/tonightlabs/tonight/internal/genai"
	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/session"
	"github.com/tonightlabs/tonight/internal/store"
)

func main() {
	// Load .env before reading configuration
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initializeLogger(cfg)

	provider, err := buildProvider(cfg)
	if err != nil {
		slog.Error("Failed to initialize generative provider", "error", err)
		os.Exit(1)
	}

	registry := store.NewRegistry()
	sess := session.New(provider, session.WithDeliberation(cfg.BotDeliberation))
	registry.Add(sess)

	slog.Info("Tonight started", "provider", cfg.Provider, "session_id", sess.ID())
	if err := runConsole(sess); err != nil {
		slog.Error("Console loop failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Tonight exited successfully")
}

// initializeLogger sets up structured logging per the configured level.
func initializeLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func buildProvider(cfg *config.Config) (genai.Provider, error) {
	switch cfg.Provider {
	case config.ProviderStatic:
		return genai.NewStatic(), nil
	case config.ProviderOpenAI:
		opts := []genai.Option{genai.WithAPIKey(cfg.OpenAIAPIKey)}
		if cfg.OpenAIModel != "" {
			opts = append(opts, genai.WithModel(cfg.OpenAIModel))
		}
		return genai.NewClient(opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// runConsole drives one session from stdin, one command per line.
func runConsole(sess *session.Session) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("tonight: type 'help' for commands")
	printState(sess)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		var err error
		switch cmd {
		case "help":
			printHelp()
			continue
		case "state":
			printState(sess)
			continue
		case "quit", "exit":
			return nil
		case "persona":
			err = sess.ChoosePersona(arg(args))
		case "activity":
			err = sess.SelectActivity(ctx, arg(args))
		case "pick":
			err = sess.ChooseSceneOption(arg(args))
		case "questions":
			err = sess.OpenQuestions()
		case "category":
			err = sess.SelectCategory(models.QuestionCategory(arg(args)))
		case "back":
			err = sess.ClearCategory()
		case "ask":
			err = sess.ChooseQuestion(arg(args))
		case "answer":
			err = sess.AnswerQuestion(strings.Join(args, " "))
		case "refuse":
			err = sess.RefuseQuestion()
		case "hub":
			err = sess.ReturnToHub()
		case "report":
			err = sess.RequestReport()
		case "rate":
			var n int
			if n, err = strconv.Atoi(arg(args)); err == nil {
				err = sess.SubmitRating(ctx, n)
			}
		case "toast":
			err = sess.Toast()
		case "draft":
			sess.SetDraft(strings.Join(args, " "))
		case "reset":
			sess.Reset()
		default:
			fmt.Printf("unknown command %q\n", cmd)
			continue
		}

		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		printState(sess)
	}
}

func arg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func printHelp() {
	fmt.Print(`commands:
  persona <haris|berina>   complete setup
  activity <id>            launch a scene (Standard, truth, narrative)
  pick <choice_id>         resolve the scene with a choice
  questions                open the question flow
  category <name>          pick a question category
  back                     back to the category picker
  ask <question_id>        ask one of the offered questions
  answer <option text>     answer the pending question
  refuse                   refuse the pending question
  hub                      abandon the current flow
  report                   open the rating prompt
  rate <1-10>              submit the rating and generate the report
  toast                    raise a glass
  draft <text>             update the shared draft
  state                    print the session snapshot
  reset                    wipe the session
  quit                     exit
`)
}

func printState(sess *session.Session) {
	snap := sess.Snapshot()

	fmt.Printf("[%s] round %d  vibe P%d F%d D%d C%d  chem %d%%  reveal %d%%  haze %d\n",
		snap.View, snap.Round,
		snap.Vibe.Playful, snap.Vibe.Flirty, snap.Vibe.Deep, snap.Vibe.Comfortable,
		snap.PartnerPersona.Chemistry, snap.PartnerPersona.RevealProgress, snap.PartnerPersona.Intoxication)

	if snap.Flash != "" {
		fmt.Println("  *", snap.Flash)
	}
	if snap.ClinkActive {
		fmt.Println("  * CLINK")
	}

	switch snap.View {
	case models.ViewSetup:
		fmt.Printf("  choose a persona: %s or %s\n", snap.User.ID, snap.Partner.ID)
	case models.ViewHub:
		for _, a := range session.Activities() {
			fmt.Printf("  %s %-10s %s\n", a.Icon, a.ID, a.Title)
		}
		if len(snap.PartnerPersona.Memories) > 0 {
			fmt.Println("  memories:", strings.Join(snap.PartnerPersona.Memories, " | "))
		}
		if snap.Report != nil {
			fmt.Printf("  report: %s / %s (%d/10)\n", snap.Report.Headline, snap.Report.Lede, snap.Report.Rating)
		}
	case models.ViewActivity:
		if snap.Scene != nil {
			fmt.Println(" ", snap.Scene.Narrative)
			for _, c := range snap.Scene.Choices {
				fmt.Printf("  [%s] %s %s\n", c.ID, c.Symbol, c.Text)
			}
		}
	case models.ViewQuestion:
		if snap.Pending != nil {
			fmt.Println("  pending:", snap.Pending.Text)
			for _, o := range snap.Pending.Options {
				fmt.Printf("    - %s\n", o)
			}
		} else if snap.Category != "" {
			for _, q := range snap.Offered {
				fmt.Printf("  [%s] %s\n", q.ID, q.Text)
			}
		} else {
			for _, c := range models.AllCategories {
				fmt.Printf("  - %s\n", c)
			}
		}
	case models.ViewRating:
		fmt.Printf("  rate the night %d-%d\n", models.MinRating, models.MaxRating)
	}
}
