package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"prosperity-go/internal/config"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	_ = godotenv.Load()
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println("\n=== Prosperity Control ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit instrument")
		fmt.Println("3) Edit paper account")
		fmt.Println("4) Save config")
		fmt.Println("5) Launch paper engine")
		fmt.Println("6) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(cfg)
		case "2":
			editInstrument(reader, cfg)
		case "3":
			editPaper(reader, cfg)
		case "4":
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "refusing to save: %v\n", err)
			} else if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "5":
			launchPaper(reader)
		case "6":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n--- Configuration Summary ---")
	fmt.Printf("Feed: %s %s%s\n", cfg.Feed.Provider, cfg.Feed.Path, cfg.Feed.URL)
	fmt.Printf("Starting cash: %.2f | fills: %s\n", cfg.Paper.StartingCash, cfg.Paper.FillsPath)
	for i, inst := range cfg.Engine.Instruments {
		fmt.Printf("%d) %s [%s] limit %d", i+1, inst.Symbol, inst.Kind, cfg.Engine.Limit(inst))
		if inst.StopLoss != 0 {
			fmt.Printf(" stop %d", inst.StopLoss)
		}
		switch inst.Kind {
		case config.KindStable:
			fmt.Printf(" buy<%d sell>%d", inst.BuyBelow, inst.SellAbove)
		case config.KindTrend:
			fmt.Printf(" windows %d/%d offset %d capacity %d", inst.ShortWindow, inst.LongWindow, inst.Offset, inst.Capacity)
		case config.KindBand:
			fmt.Printf(" buy %d-%d sell %d-%d", inst.BuyBand.Low, inst.BuyBand.High, inst.SellBand.Low, inst.SellBand.High)
		}
		fmt.Println()
	}
}

func editInstrument(reader *bufio.Reader, cfg *config.Config) {
	printSummary(cfg)
	idx := promptInt(reader, "Instrument number", 1) - 1
	if idx < 0 || idx >= len(cfg.Engine.Instruments) {
		fmt.Println("no such instrument")
		return
	}
	inst := &cfg.Engine.Instruments[idx]
	fmt.Printf("\n--- Edit %s ---\n", inst.Symbol)
	inst.PositionLimit = promptInt(reader, "Position limit (0 = engine default)", inst.PositionLimit)
	inst.StopLoss = promptInt(reader, "Stop-loss floor (0 = off)", inst.StopLoss)
	inst.StartAt = int64(promptInt(reader, "Start at timestamp", int(inst.StartAt)))
	switch inst.Kind {
	case config.KindStable:
		inst.BuyBelow = promptInt(reader, "Buy below", inst.BuyBelow)
		inst.SellAbove = promptInt(reader, "Sell above", inst.SellAbove)
	case config.KindTrend:
		inst.Capacity = promptInt(reader, "History capacity", inst.Capacity)
		inst.ShortWindow = promptInt(reader, "Short window", inst.ShortWindow)
		inst.LongWindow = promptInt(reader, "Long window", inst.LongWindow)
		inst.Offset = promptInt(reader, "Offset", inst.Offset)
	case config.KindBand:
		inst.BuyBand.Low = promptInt(reader, "Buy band low", inst.BuyBand.Low)
		inst.BuyBand.High = promptInt(reader, "Buy band high", inst.BuyBand.High)
		inst.SellBand.Low = promptInt(reader, "Sell band low", inst.SellBand.Low)
		inst.SellBand.High = promptInt(reader, "Sell band high", inst.SellBand.High)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("warning: %v\n", err)
	}
}

func editPaper(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Paper Account ---")
	cfg.Paper.StartingCash = promptFloat(reader, "Starting cash", cfg.Paper.StartingCash)
	cfg.Engine.PositionLimit = promptInt(reader, "Engine position limit", cfg.Engine.PositionLimit)
}

func launchPaper(reader *bufio.Reader) {
	fmt.Println("Launching paper engine (Ctrl+C to stop)...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/paper", "-config", locateConfig())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start engine: %v\n", err)
		return
	}

	go func() {
		_ = cmd.Wait()
		cancel()
	}()

	fmt.Print("\nPress ENTER to stop the engine and return to menu...")
	_, _ = reader.ReadString('\n')
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("%s [%.2f]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Printf("invalid number, keeping %.2f\n", current)
		return current
	}
	return val
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	fmt.Printf("%s [%d]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.Atoi(line)
	if err != nil {
		fmt.Printf("invalid integer, keeping %d\n", current)
		return current
	}
	return val
}

func loadConfig() (*config.Config, error) {
	return config.Load(locateConfig())
}

func saveConfig(cfg *config.Config) error {
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	path := defaultConfigPath
	if env := os.Getenv("PROSPERITY_CONFIG"); env != "" {
		path = env
	}
	return filepath.Clean(path)
}
