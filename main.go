package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wargame/broker"
	"wargame/config"
	"wargame/engine"
	"wargame/experiments"
	"wargame/game"
	"wargame/player"
	"wargame/rules"
	"wargame/searcher"
	"wargame/trace"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	if cfg.Experiment != "" {
		if err := experiments.Run(cfg.Experiment, cfg.TraceDir); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.BrokerListen != "" {
		relay := broker.NewServer()
		go func() {
			if err := relay.Listen(ctx, cfg.BrokerListen); err != nil {
				log.Error().Err(err).Msg("game broker stopped")
			}
		}()
	}

	var client *broker.Client
	if cfg.Broker != "" {
		client = broker.NewClient(cfg.Broker)
	}

	board := rules.NewBoard(cfg.MaxTurns)
	players, automated, console, err := buildPlayers(cfg, client)
	if err != nil {
		return err
	}
	if console != nil {
		defer console.Close()
	}

	var observers []engine.LocalOption

	// Humans at the local console see the position after every move.
	if console != nil {
		fmt.Println(board)
		observers = append(observers, engine.WithObserver(func(ev engine.Event) {
			fmt.Println(ev.After)
		}))
	}

	var recorder *trace.Recorder
	if cfg.Trace {
		recorder = trace.NewRecorder(trace.Params{
			MaxTime:   cfg.MaxTime,
			MaxTurns:  cfg.MaxTurns,
			AlphaBeta: cfg.AlphaBeta,
			GameType:  cfg.GameType,
			Heuristic: cfg.Heuristic,
		})
		recorder.RecordBoard(board)
		observers = append(observers, engine.WithObserver(func(ev engine.Event) {
			description := ev.Move.String()
			if d, ok := ev.Before.(game.MoveDescriber); ok {
				description = d.DescribeMove(ev.Move)
			}
			recorder.RecordAction(ev.Mover, ev.Turn, description)
			if agent, ok := automated[ev.Mover]; ok {
				if result, moved := agent.LastResult(); moved {
					recorder.RecordSearch(result, agent.Metrics())
				}
			}
			recorder.RecordBoard(ev.After)
		}))
	}

	// With a relay configured, every locally decided move is published so
	// the opposing instance can pick it up.
	if client != nil {
		observers = append(observers, engine.WithObserver(func(ev engine.Event) {
			if _, isRemote := players[ev.Mover].(*player.Remote); isRemote {
				return
			}
			mv, ok := ev.Move.(rules.Move)
			if !ok {
				return
			}
			msg := broker.Message{
				From: broker.Cell{Row: mv.Src.Row, Col: mv.Src.Col},
				To:   broker.Cell{Row: mv.Dst.Row, Col: mv.Dst.Col},
				Turn: ev.After.Plies(),
			}
			if err := client.Publish(ctx, msg); err != nil {
				log.Error().Err(err).Msgf("failed to publish turn %d", msg.Turn)
			}
		}))
	}

	match, err := engine.NewLocal(board, players[game.Attacker], players[game.Defender], observers...)
	if err != nil {
		return err
	}

	outcome, err := match.Run(ctx)
	if closeErr := match.Close(); closeErr != nil {
		err = multierror.Append(err, closeErr).ErrorOrNil()
	}
	if err != nil {
		return err
	}

	fmt.Printf("%v in %d turns\n", outcome, match.State().Plies())
	if recorder != nil {
		recorder.RecordOutcome(outcome, match.State().Plies())
		path, err := recorder.Write(cfg.TraceDir)
		if err != nil {
			return err
		}
		log.Info().Msgf("game trace written to %s", path)
	}
	return nil
}

// buildPlayers assigns each role its move source: a search agent for
// computer roles, the relay for human roles played on another instance,
// the console otherwise.
func buildPlayers(cfg config.Config, client *broker.Client) (map[game.Role]player.Player, map[game.Role]*player.Automated, *player.Console, error) {
	players := map[game.Role]player.Player{}
	automated := map[game.Role]*player.Automated{}

	for _, role := range cfg.ComputerRoles() {
		agent, err := player.NewAutomated(role, cfg.Heuristic, cfg.Goroutines,
			searcher.WithMaxDepth(cfg.MaxDepth),
			searcher.WithAlphaBeta(cfg.AlphaBeta),
			searcher.WithDuration(cfg.MoveBudget()),
		)
		if err != nil {
			return nil, nil, nil, err
		}
		players[role] = agent
		automated[role] = agent
	}

	var console *player.Console
	for _, role := range cfg.HumanRoles() {
		if client != nil {
			players[role] = player.NewRemote(role, client, decodeMove)
			continue
		}
		if console == nil {
			var err error
			if console, err = player.NewConsole(); err != nil {
				return nil, nil, nil, err
			}
		}
		players[role] = player.NewHuman(role, console, os.Stdout)
	}
	return players, automated, console, nil
}

func decodeMove(msg broker.Message) (game.Move, error) {
	return rules.Move{
		Src: rules.Coord{Row: msg.From.Row, Col: msg.From.Col},
		Dst: rules.Coord{Row: msg.To.Row, Col: msg.To.Col},
	}, nil
}
