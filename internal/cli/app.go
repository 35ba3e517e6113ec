// Package cli runs the text loop: it reads player input, feeds the
// parser and the engine, and renders day reports.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/appengine-ltd/divide-trail/internal/config"
	"github.com/appengine-ltd/divide-trail/internal/content"
	"github.com/appengine-ltd/divide-trail/internal/game"
	"github.com/appengine-ltd/divide-trail/internal/parser"
	"github.com/appengine-ltd/divide-trail/internal/records"
	"github.com/appengine-ltd/divide-trail/internal/save"
)

type AppConfig struct {
	Version    string
	ConfigPath string
	LoadSlot   string
	Seed       int64 // overrides the config seed when non-zero
}

type App struct {
	cfg     config.Config
	appCfg  AppConfig
	engine  *game.Engine
	pack    *content.Pack
	parser  *parser.Parser
	store   *save.Store
	records *records.Store

	in  *bufio.Scanner
	out io.Writer
}

func NewApp(appCfg AppConfig, in io.Reader, out io.Writer) *App {
	return &App{
		appCfg: appCfg,
		parser: parser.New(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (a *App) Run() error {
	cfg, err := config.Load(a.appCfg.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	pack, err := content.LoadWithOverrides(cfg.Content.TrailPath, cfg.Content.EventsPath)
	if err != nil {
		return err
	}
	a.pack = pack
	a.store = save.NewStore(cfg.SavesDir)

	db, err := records.Open(cfg.RecordsDB)
	if err != nil {
		return err
	}
	defer db.Close()
	a.records = db

	if a.appCfg.LoadSlot != "" {
		snap, err := a.store.Load(a.appCfg.LoadSlot)
		if err != nil {
			return fmt.Errorf("loading slot %s: %w", a.appCfg.LoadSlot, err)
		}
		a.engine, err = game.Restore(snap, pack.GamePack())
		if err != nil {
			return err
		}
		a.printf("Loaded expedition from slot %s (day %d).\n", a.appCfg.LoadSlot, a.engine.Party.DaysTraveled)
	} else {
		if err := a.newRun(); err != nil {
			return err
		}
	}

	a.printIntro()
	return a.loop()
}

func (a *App) newRun() error {
	party, err := a.cfg.BuildParty()
	if err != nil {
		return err
	}
	trail, err := game.NewTrail(a.pack.Locations, a.pack.Crossings, a.pack.Forks)
	if err != nil {
		return err
	}
	difficulty, err := game.ParseDifficulty(a.cfg.Difficulty)
	if err != nil {
		return err
	}
	pace, err := game.ParsePace(a.cfg.Pace)
	if err != nil {
		return err
	}
	seed := a.cfg.Seed
	if a.appCfg.Seed != 0 {
		seed = a.appCfg.Seed
	}
	a.engine = game.NewEngine(game.EngineConfig{
		Seed:       seed,
		Party:      party,
		Trail:      trail,
		Difficulty: difficulty,
		Pace:       pace,
		Events:     a.pack.Events,
	})
	return nil
}

func (a *App) printIntro() {
	e := a.engine
	a.printf("\n=== The Great Divide Trail ===\n")
	a.printf("%s sets out from %s for %s: %d miles.\n",
		e.Party.Name,
		e.Trail.Locations[0].Name,
		e.Trail.Locations[len(e.Trail.Locations)-1].Name,
		e.Trail.TotalDistance())
	a.printf("Difficulty %s, pace %s. Type 'help' for commands.\n\n",
		e.Difficulty, e.Pace)
}

func (a *App) loop() error {
	for {
		if state := a.engine.State(); state != game.StateRunning {
			return a.finish(state)
		}
		a.printPrompt()
		line, ok := a.readLine()
		if !ok {
			return nil
		}

		intent := a.parser.Parse(a.parseContext(), line)
		if intent.Clarify != nil {
			a.printf("%s\n", intent.Clarify.Prompt)
			for i, opt := range intent.Clarify.Options {
				a.printf("  %d) %s %s\n", i+1, opt.Verb, strings.Join(opt.Args, " "))
			}
			continue
		}

		quit, err := a.dispatch(intent)
		if err != nil {
			a.printf("%s\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (a *App) parseContext() parser.ParseContext {
	_, _, atRiver := a.engine.CurrentCrossing()
	_, atFork := a.engine.CurrentFork()
	return parser.ParseContext{
		AtRiver:      atRiver,
		AtFork:       atFork,
		AtSettlement: a.engine.Trail.CurrentLocation().IsSettlement,
	}
}

func (a *App) printPrompt() {
	e := a.engine
	loc := e.Trail.CurrentLocation()
	a.printf("[Day %d | %s | %s | %s | mile %d/%d] > ",
		e.Party.DaysTraveled, e.Date.String(), loc.Name, e.Sky.Current,
		e.Trail.MilesTraveled, e.Trail.TotalDistance())
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

func (a *App) dispatch(intent parser.Intent) (bool, error) {
	arg := ""
	if len(intent.Args) > 0 {
		arg = intent.Args[0]
	}

	switch intent.Verb {
	case "travel":
		return false, a.runDay(game.DayCommand{Action: game.ActionTravel})
	case "rest":
		days := 1
		if intent.Quantity != nil && intent.Quantity.N > 0 {
			days = min(intent.Quantity.N, 7)
		}
		return false, a.runDay(game.DayCommand{Action: game.ActionRest, RestDays: days})
	case "hunt":
		style, err := game.ParseStyle(arg)
		if err != nil {
			return false, err
		}
		return false, a.runDay(game.DayCommand{Action: game.ActionHunt, Style: style})
	case "forage":
		target, err := game.ParseForageTarget(arg)
		if err != nil {
			return false, err
		}
		return false, a.runDay(game.DayCommand{Action: game.ActionForage, ForageTarget: target})
	case "fish":
		method, err := game.ParseFishingMethod(arg)
		if err != nil {
			return false, err
		}
		return false, a.runDay(game.DayCommand{Action: game.ActionFish, FishingMethod: method})
	case "cross":
		return false, a.cross(arg)
	case "route":
		// Numbered choices arrive as a quantity ("route 2").
		if arg == "" && intent.Quantity != nil && intent.Quantity.N > 0 {
			arg = strconv.Itoa(intent.Quantity.N)
		}
		return false, a.route(arg)
	case "wait":
		return false, a.runDay(game.DayCommand{Action: game.ActionWait})
	case "scout":
		return false, a.scout()
	case "trade":
		return false, a.showPrices()
	case "buy", "sell":
		return false, a.trade(intent.Verb, arg, intent.Quantity)
	case "pace":
		pace, err := game.ParsePace(arg)
		if err != nil {
			return false, err
		}
		a.engine.Pace = pace
		a.printf("The party will travel at a %s pace.\n", pace)
		return false, nil
	case "rations":
		rationing, err := game.ParseRationing(arg)
		if err != nil {
			return false, err
		}
		a.engine.Party.Rationing = rationing
		a.printf("Rations set to %s: %s\n", rationing, rationing.Description())
		return false, nil
	case "repair":
		return false, a.repair()
	case "status":
		a.printStatus()
		return false, nil
	case "supplies":
		a.printSupplies()
		return false, nil
	case "map":
		a.printMap()
		return false, nil
	case "equipment":
		a.printEquipment()
		return false, nil
	case "records":
		return false, a.printRecords()
	case "save":
		slot := arg
		if slot == "" {
			slot = "autosave"
		}
		if err := a.store.Save(slot, a.engine.Snapshot()); err != nil {
			return false, err
		}
		a.printf("Saved to slot %s.\n", slot)
		return false, nil
	case "load":
		return false, a.load(arg)
	case "help":
		a.printHelp()
		return false, nil
	case "quit":
		a.printf("The trail will be here when you return.\n")
		return true, nil
	default:
		return false, fmt.Errorf("nothing to do with %q", intent.Verb)
	}
}

// runDay resolves one day and renders the report, looping the blizzard
// confirmation and any pending event.
func (a *App) runDay(cmd game.DayCommand) error {
	report := a.engine.ResolveDay(cmd)
	if report.ConfirmationRequired {
		for _, msg := range report.Messages {
			a.printf("%s\n", msg)
		}
		a.printf("Travel anyway? (y/n) ")
		line, ok := a.readLine()
		if !ok || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			a.printf("The party shelters in place.\n")
			return nil
		}
		cmd.ConfirmTravel = true
		report = a.engine.ResolveDay(cmd)
	}

	a.renderReport(report)

	if report.PendingEvent != nil {
		a.resolveEvent(report.PendingEvent)
	}
	return nil
}

func (a *App) renderReport(report game.DayReport) {
	if report.MilesTraveled > 0 {
		a.printf("Traveled %d miles.\n", report.MilesTraveled)
	}
	for _, milestone := range report.Milestones {
		a.printf("* %s\n", milestone)
	}
	for _, msg := range report.Messages {
		a.printf("%s\n", msg)
	}
	if report.Activity != nil && report.Activity.Message != "" {
		a.printf("%s\n", report.Activity.Message)
		for _, d := range report.Activity.Details {
			a.printf("  %s\n", d)
		}
	}
	if report.Crossing != nil && report.Crossing.Message != "" {
		a.printf("%s\n", report.Crossing.Message)
		for _, d := range report.Crossing.Details {
			a.printf("  %s\n", d)
		}
	}
	for _, warning := range report.Party.Warnings {
		a.printf("! %s\n", warning)
	}
	for _, event := range report.Party.Events {
		a.printf("! %s\n", event)
	}
}

func (a *App) resolveEvent(event *game.Event) {
	a.printf("\n--- %s ---\n%s\n", event.Name, event.Description)
	options := event.AvailableChoices(a.engine.EventContext())
	for i, opt := range options {
		if opt.Available {
			a.printf("  %d) %s\n", i+1, opt.Choice.Text)
		} else {
			a.printf("  %d) %s (%s)\n", i+1, opt.Choice.Text, opt.Reason)
		}
	}

	for {
		a.printf("Choose: ")
		line, ok := a.readLine()
		if !ok {
			return
		}
		choice := 0
		if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d", &choice); err != nil || choice < 1 || choice > len(options) {
			a.printf("Pick a number between 1 and %d.\n", len(options))
			continue
		}
		outcome, effects, err := a.engine.ResolveEvent(event, choice-1)
		if err != nil {
			a.printf("%s\n", err)
			continue
		}
		a.printf("%s\n", outcome.Description)
		for _, msg := range effects.Messages {
			a.printf("  %s\n", msg)
		}
		return
	}
}

func (a *App) cross(arg string) error {
	crossing, condition, at := a.engine.CurrentCrossing()
	if !at {
		return errors.New("there is no river to cross here")
	}
	if arg == "" {
		a.printf("%s: %s\n%s\n", crossing.Name, crossing.Description, condition.Description())
		hasTools := a.engine.Party.Ledger.HasEnough(game.ResourceTools, 1)
		money := int(a.engine.Party.Ledger.Quantity(game.ResourceMoney))
		for _, opt := range crossing.AvailableMethods(condition, hasTools, money) {
			if opt.Available {
				a.printf("  [ ] %s: %s\n", opt.Method.Name(), opt.Description)
			} else {
				a.printf("  [x] %s: %s\n", opt.Method.Name(), opt.Reason)
			}
		}
		return nil
	}
	method, err := game.ParseCrossingMethod(arg)
	if err != nil {
		return err
	}
	return a.runDay(game.DayCommand{Action: game.ActionCrossRiver, CrossingMethod: method})
}

func (a *App) route(arg string) error {
	fork, at := a.engine.CurrentFork()
	if !at {
		return errors.New("the trail does not split here")
	}
	standings := a.engine.ForkOptions()
	if arg == "" {
		a.printf("%s: %s\n", fork.Name, fork.Description)
		for i, st := range standings {
			opt := st.Option
			length := fmt.Sprintf("%d miles", opt.Distance)
			if saved := opt.MilesSaved(); saved > 0 {
				length += fmt.Sprintf(", saves %d", saved)
			} else if saved < 0 {
				length += fmt.Sprintf(", adds %d", -saved)
			}
			if st.Available {
				a.printf("  %d) %s (%s): %s\n", i+1, opt.Name, length, opt.Description)
			} else {
				a.printf("  %d) %s (%s): %s\n", i+1, opt.Name, length, st.Reason)
			}
		}
		a.printf("Choose with: route <number or name>\n")
		return nil
	}
	id := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(standings) {
			return fmt.Errorf("there is no route %d at %s", n, fork.Name)
		}
		id = standings[n-1].Option.ID
	} else {
		for _, st := range standings {
			name := strings.ToLower(st.Option.Name)
			if name == strings.ToLower(arg) || strings.HasPrefix(name, strings.ToLower(arg)) {
				id = st.Option.ID
				break
			}
		}
	}
	return a.runDay(game.DayCommand{Action: game.ActionRoute, RouteID: id})
}

func (a *App) scout() error {
	report, err := a.engine.ScoutAhead()
	if err != nil {
		return err
	}
	a.printf("%s scouts %d miles ahead.\n", report.Scout, report.DistanceScouted)
	for _, loc := range report.Locations {
		a.printf("  mile %d: %s\n", loc.MileMarker, loc.Name)
	}
	for _, hazard := range report.HazardsSpotted {
		a.printf("  hazard spotted: %s\n", hazard)
	}
	if len(report.Locations) == 0 {
		a.printf("  Nothing but open trail in scouting range.\n")
	}
	return nil
}

func (a *App) showPrices() error {
	loc := a.engine.Trail.CurrentLocation()
	if !loc.IsSettlement {
		return fmt.Errorf("no one to trade with at %s", loc.Name)
	}
	a.printf("Prices at %s (buy / sell):\n", loc.Name)
	for _, kind := range game.AllResourceKinds() {
		if kind == game.ResourceMoney {
			continue
		}
		price := a.engine.TradePrice(kind)
		a.printf("  %-12s $%.2f / $%.2f per %s\n", kind.Name(), price, price/2, kind.Unit())
	}
	a.printf("Money: $%.2f\n", a.engine.Party.Ledger.Quantity(game.ResourceMoney))
	return nil
}

func (a *App) trade(verb, arg string, q *parser.Quantity) error {
	if arg == "" {
		return fmt.Errorf("%s what? (food, water, ammunition, medical, clothing, tools)", verb)
	}
	amount := 10.0
	if q != nil && q.N > 0 {
		amount = float64(q.N)
	}
	kind, err := game.ParseResourceKind(arg)
	if err != nil {
		return err
	}
	if kind == game.ResourceMoney {
		return errors.New("money is not for sale")
	}
	if verb == "buy" {
		bought, err := a.engine.Buy(kind, amount)
		if err != nil {
			return err
		}
		a.printf("Bought %.0f %s of %s.\n", bought, kind.Unit(), kind.Name())
		return nil
	}
	sold, err := a.engine.Sell(kind, amount)
	if err != nil {
		return err
	}
	a.printf("Sold %.0f %s of %s.\n", sold, kind.Unit(), kind.Name())
	return nil
}

func (a *App) repair() error {
	kit := a.engine.Kit
	var worst *game.EquipmentItem
	for _, item := range kit.Items {
		if item.DurabilityPercentage() >= 100 {
			continue
		}
		if worst == nil || item.DurabilityPercentage() < worst.DurabilityPercentage() {
			worst = item
		}
	}
	if worst == nil {
		a.printf("Everything is in working order.\n")
		return nil
	}
	restored, ok := worst.Repair(a.engine.RNG(), 30,
		kit.Has(game.EquipRepairKit),
		a.engine.Party.SkillBonus(game.SkillRepair))
	if ok {
		a.printf("Repaired %s (+%.0f durability).\n", worst.Kind.Name(), restored)
	} else {
		a.printf("The repair on %s failed.\n", worst.Kind.Name())
	}
	return nil
}

func (a *App) printStatus() {
	p := a.engine.Party
	a.printf("%s: %s\n", p.Name, p.Status())
	for _, m := range p.Members {
		a.printf("  %s\n", m)
	}
	a.printf("Average morale %.0f, rations %s, pace %s.\n",
		p.AverageMorale(), p.Rationing, a.engine.Pace)
}

func (a *App) printSupplies() {
	p := a.engine.Party
	days := p.Ledger.DaysOfSupplies(p.AliveCount(), p.Rationing, a.engine.Difficulty.Modifiers().ConsumptionRate)
	for _, kind := range game.AllResourceKinds() {
		qty := p.Ledger.Quantity(kind)
		if kind == game.ResourceMoney {
			a.printf("  %-12s $%.2f\n", kind.Name(), qty)
			continue
		}
		if d, ok := days[kind]; ok && d < 999 {
			a.printf("  %-12s %.1f %s (%d days)\n", kind.Name(), qty, kind.Unit(), d)
		} else {
			a.printf("  %-12s %.1f %s\n", kind.Name(), qty, kind.Unit())
		}
	}
}

func (a *App) printMap() {
	t := a.engine.Trail
	a.printf("Mile %d of %d (%.0f%%).\n", t.MilesTraveled, t.TotalDistance(), t.ProgressPercentage())
	if next := t.NextLocation(); next != nil {
		a.printf("Next: %s in %d miles.\n", next.Name, t.DistanceToNext())
	}
	if crossing, condition, at := a.engine.CurrentCrossing(); at {
		a.printf("Held at %s. %s\n", crossing.Name, condition.Description())
	}
	if fork, at := a.engine.CurrentFork(); at {
		a.printf("Held at %s. The trail splits; choose a route.\n", fork.Name)
	}
}

func (a *App) printEquipment() {
	for _, item := range a.engine.Kit.Items {
		status := fmt.Sprintf("%.0f%%", item.DurabilityPercentage())
		if item.IsBroken() {
			status = "broken"
		}
		a.printf("  %-16s %s\n", item.Kind.Name(), status)
	}
}

func (a *App) printRecords() error {
	totals, err := a.records.Totals(context.Background())
	if err != nil {
		return err
	}
	a.printf("%d expeditions recorded, %d victories, %d deaths on the trail.\n",
		totals.Runs, totals.Victories, totals.Deaths)
	best, err := a.records.BestRuns(context.Background(), 5)
	if err != nil {
		return err
	}
	for i, run := range best {
		a.printf("  %d. %s: %d days, %d survivors (%s)\n",
			i+1, run.PartyName, run.Days, run.Survivors, run.Difficulty)
	}
	return nil
}

func (a *App) load(slot string) error {
	var snap game.Snapshot
	var err error
	if slot == "" {
		snap, slot, err = a.store.LoadLatest()
	} else {
		snap, err = a.store.Load(slot)
	}
	if err != nil {
		return err
	}
	engine, err := game.Restore(snap, a.pack.GamePack())
	if err != nil {
		return err
	}
	a.engine = engine
	a.printf("Loaded slot %s (day %d).\n", slot, engine.Party.DaysTraveled)
	return nil
}

func (a *App) printHelp() {
	a.printf(`Day actions (each ends the day):
  travel                    push on down the trail
  rest [days]               camp and recover
  hunt [style]              conservative, normal or aggressive
  forage [target]           berries, herbs or water
  fish [method]             line, net or spear
  cross [method]            ford, caulk, ferry, bridge or wait
  route [choice]            pick a branch where the trail splits
  wait                      wait out the day (rivers drop, weather turns)
Anytime:
  scout                     send the best scout ahead
  trade / buy / sell        deal at a settlement
  pace, rations             change the expedition's tempo
  repair                    mend the most worn equipment
  status, supplies, map, equipment, records
  save [slot], load [slot], quit
`)
}

func (a *App) finish(state game.RunState) error {
	e := a.engine
	switch state {
	case game.StateVictory:
		a.printf("\n%s has reached %s after %d days. %d of %d made it through.\n",
			e.Party.Name,
			e.Trail.Locations[len(e.Trail.Locations)-1].Name,
			e.Party.DaysTraveled, e.Party.AliveCount(), len(e.Party.Members))
	case game.StateGameOver:
		a.printf("\nThe expedition has ended. No one from %s survives, %d miles from the end.\n",
			e.Party.Name, e.Trail.TotalDistance()-e.Trail.MilesTraveled)
		for _, death := range e.Party.DeathLog {
			a.printf("  %s, %s: died on day %d (%s)\n", death.Name, death.Role, death.Day, death.Cause)
		}
	default:
		return fmt.Errorf("run is still in progress")
	}

	run := records.Run{
		PartyName:  e.Party.Name,
		Seed:       e.Snapshot().Seed,
		Difficulty: string(e.Difficulty),
		Pace:       string(e.Pace),
		Outcome:    string(state),
		Days:       e.Party.DaysTraveled,
		Miles:      e.Trail.MilesTraveled,
		Survivors:  e.Party.AliveCount(),
		Deaths:     len(e.Party.DeathLog),
	}
	if _, err := a.records.Record(context.Background(), run); err != nil {
		a.printf("could not record the expedition: %s\n", err)
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
