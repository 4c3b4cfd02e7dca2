package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"
	"github.com/vovakirdan/core-collapse/internal/storage"
)

// aiNames fills the simulated seats beyond the local player.
var aiNames = []string{"Vex", "Juno", "Rho", "Sable", "Orin", "Talli", "Mir"}

// CrewNames builds the seat list for a crew of the given size. Seat 0 is
// the local player.
func CrewNames(localName string, players int) []string {
	if localName == "" {
		localName = "You"
	}
	names := []string{localName}
	for i := 0; len(names) < players && i < len(aiNames); i++ {
		names = append(names, aiNames[i])
	}
	return names
}

// Model is the Bubble Tea model for a Core Collapse session. The engine
// is purely event-driven; the tick loop only runs while a minigame is
// active.
type Model struct {
	eng   *engine.Engine
	store *storage.Store
	keys  *KeyMapper

	runtime core.RuntimeConfig
	screen  *core.Screen
	input   core.InputFrame

	active minigames.Minigame // skill check in flight, nil otherwise

	editingName bool
	nameBuf     string
	handCursor  int

	// resultLog accumulates every minigame outcome of the session for
	// the history store; the engine only retains the current and the
	// previous round.
	resultLog []storage.MinigameRow

	width    int
	height   int
	saved    bool
	quitting bool
}

// NewModel creates a session model around an engine.
func NewModel(eng *engine.Engine, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return Model{
		eng:     eng,
		store:   store,
		keys:    NewKeyMapper(),
		runtime: cfg,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		input:   core.NewInputFrame(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// Init implements tea.Model. The engine waits for input; nothing ticks yet.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey routes keyboard input: to the active minigame while one is
// running, otherwise to the current phase screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.active != nil {
		if m.keys.MapKeyToFrame(msg, &m.input) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.editingName {
		return m.handleNameEdit(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	}

	snap := m.eng.Snapshot()
	switch snap.Phase {
	case engine.PhaseLobby:
		return m.handleLobbyKey(msg)
	case engine.PhaseRoleReveal:
		if msg.String() == "enter" || msg.String() == " " {
			m.eng.Dispatch(engine.ContinueReveal{})
		}
	case engine.PhasePlan:
		return m.handlePlanKey(msg, snap)
	case engine.PhaseIgnition:
		if msg.String() == "enter" {
			m.eng.Dispatch(engine.Proceed{})
		}
	case engine.PhaseEngage:
		return m.handleEngageKey(msg, snap)
	case engine.PhaseMaintenance:
		if msg.String() == "enter" {
			m.eng.Dispatch(engine.ResolveMaintenance{})
			m = m.maybeSaveSession()
		}
	case engine.PhaseGameOver:
		if msg.String() == "r" {
			m.eng.Dispatch(engine.Restart{})
			m.saved = false
			m.resultLog = nil
			m.handCursor = 0
		}
	}
	return m, nil
}

func (m Model) handleNameEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if m.nameBuf != "" {
			m.eng.Dispatch(engine.Rename{Name: m.nameBuf})
		}
		m.editingName = false
		m.nameBuf = ""
	case "esc":
		m.editingName = false
		m.nameBuf = ""
	case "backspace":
		if len(m.nameBuf) > 0 {
			m.nameBuf = m.nameBuf[:len(m.nameBuf)-1]
		}
	default:
		if msg.Type == tea.KeyRunes && len(m.nameBuf) < 16 {
			m.nameBuf += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.editingName = true
		m.nameBuf = ""
	case "1":
		m.eng.Dispatch(engine.SelectJob{Job: engine.JobFlux})
	case "2":
		m.eng.Dispatch(engine.SelectJob{Job: engine.JobCoolant})
	case "3":
		m.eng.Dispatch(engine.SelectJob{Job: engine.JobHelm})
	case "enter":
		m.eng.Dispatch(engine.Ready{})
	}
	return m, nil
}

func (m Model) handlePlanKey(msg tea.KeyMsg, snap engine.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.handCursor > 0 {
			m.handCursor--
		}
	case "right", "l":
		if m.handCursor < len(snap.Hand)-1 {
			m.handCursor++
		}
	case " ":
		if m.handCursor < len(snap.Hand) {
			m.eng.Dispatch(engine.ChooseCard{Value: snap.Hand[m.handCursor]})
		}
	case "enter":
		m.eng.Dispatch(engine.LockPlan{})
	}
	return m, nil
}

func (m Model) handleEngageKey(msg tea.KeyMsg, snap engine.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", " ", "enter":
		local := localPlayer(snap)
		if local == nil {
			return m, nil
		}
		m.eng.Dispatch(engine.ActivateItem{PlayerID: local.ID, ItemID: local.ItemID})
		if after := m.eng.Snapshot(); after.Active != nil {
			return m.startMinigame(after)
		}
	case "p":
		m.eng.Dispatch(engine.Pass{})
	}
	return m, nil
}

// startMinigame instantiates the skill check for the in-flight activation
// and begins its tick loop. The run is seeded from the engine's stream
// seed and the round index, so a replayed session reproduces its checks.
func (m Model) startMinigame(snap engine.Snapshot) (tea.Model, tea.Cmd) {
	game, err := minigames.ForJob(snap.Active.Job)
	if err != nil {
		// No skill check bound to the job: fail the activation rather
		// than wedge the Engage phase.
		m.eng.Dispatch(engine.MinigameComplete{Tier: engine.TierFail, Score01: 0})
		return m, nil
	}

	cfg := m.runtime
	cfg.Seed = snap.Seed + int64(snap.RoundIndex)
	cfg.Energy01 = snap.Round.ReactorEnergy01
	cfg.ShipHealth01 = snap.ShipHealth01
	game.Reset(cfg)

	m.active = game
	m.input.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// handleTick advances the active minigame by one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.active == nil {
		return m, nil
	}

	result := m.active.Step(m.input)
	m.input.Clear()

	if result.State.Done {
		tier, score := m.active.Outcome()
		m.active = nil
		m.eng.Dispatch(engine.MinigameComplete{Tier: tier, Score01: score})
		m = m.logLastResult()
		return m, nil
	}
	return m, tickCmd(m.runtime.TickRate)
}

// logLastResult copies the most recent minigame result into the session
// log for persistence at game over.
func (m Model) logLastResult() Model {
	snap := m.eng.Snapshot()
	results := snap.Round.Results
	if len(results) == 0 {
		return m
	}
	last := results[len(results)-1]
	m.resultLog = append(m.resultLog, storage.MinigameRow{
		Round:   snap.Round.Index,
		Player:  playerName(snap, last.PlayerID),
		Job:     last.Job,
		Item:    last.ItemID,
		Tier:    last.Tier,
		Score01: last.Score01,
	})
	return m
}

// maybeSaveSession persists the finished game once. Best-effort: a
// failed save never interrupts the session.
func (m Model) maybeSaveSession() Model {
	snap := m.eng.Snapshot()
	if snap.Phase != engine.PhaseGameOver || m.saved {
		return m
	}
	m.saved = true
	if m.store == nil {
		return m
	}

	var saboteurJob engine.Job
	for _, p := range snap.Players {
		if p.ID == snap.Saboteur {
			saboteurJob = p.Job
		}
	}
	_, _ = m.store.SaveSession(storage.SessionRecord{
		Seed:         snap.Seed,
		Players:      len(snap.Players),
		RoundsPlayed: snap.RoundIndex,
		Clears:       snap.Clears,
		Overloads:    snap.Overloads,
		ShipHealth01: snap.ShipHealth01,
		CrewWon:      snap.CrewWins,
		SaboteurJob:  saboteurJob,
		Results:      m.resultLog,
	})
	return m
}

func localPlayer(snap engine.Snapshot) *engine.PlayerView {
	for i := range snap.Players {
		if snap.Players[i].ID == snap.LocalID {
			return &snap.Players[i]
		}
	}
	return nil
}

func playerName(snap engine.Snapshot, id string) string {
	for _, p := range snap.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// View renders the current phase screen, or the active minigame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.active != nil {
		m.active.Render(m.screen)
		return m.screen.String()
	}

	snap := m.eng.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n\n")

	switch snap.Phase {
	case engine.PhaseLobby:
		b.WriteString(m.viewLobby(snap))
	case engine.PhaseRoleReveal:
		b.WriteString(m.viewRoleReveal(snap))
	case engine.PhasePlan:
		b.WriteString(m.viewPlan(snap))
	case engine.PhaseIgnition:
		b.WriteString(m.viewIgnition(snap))
	case engine.PhaseEngage:
		b.WriteString(m.viewEngage(snap))
	case engine.PhaseMaintenance:
		b.WriteString(m.viewMaintenance(snap))
	case engine.PhaseGameOver:
		b.WriteString(m.viewGameOver(snap))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(phaseHelp(snap.Phase)))
	return b.String()
}

func (m Model) renderHeader(snap engine.Snapshot) string {
	title := titleStyle.Render("CORE COLLAPSE")
	status := subtleStyle.Render(fmt.Sprintf(
		"round %d/%d   gate %d   limit %d   clears %d   overloads %d",
		snap.RoundIndex, snap.RoundsMax,
		snap.Round.Gate, snap.ReactorLimit,
		snap.Clears, snap.Overloads,
	))
	return title + "\n" + status + "\n" + shipGauge(snap.ShipHealth01, 24)
}

func (m Model) viewLobby(snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString("Crew manifest\n")
	for _, p := range snap.Players {
		line := fmt.Sprintf("  %s", p.Name)
		if p.Local {
			job := string(p.Job)
			if job == "" {
				job = "assigned at launch"
			}
			line = selectedStyle.Render(fmt.Sprintf("  %s (you) - %s", p.Name, job))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.editingName {
		b.WriteString(fmt.Sprintf("\nname: %s_\n", m.nameBuf))
	}
	b.WriteString(subtleStyle.Render(
		"\njobs: [1] flux technician  [2] coolant operator  [3] helm balancer"))
	return b.String()
}

func (m Model) viewRoleReveal(snap engine.Snapshot) string {
	var b strings.Builder
	local := localPlayer(snap)
	if snap.LocalRole == engine.RoleSaboteur {
		b.WriteString(saboteurStyle.Render("You are the SABOTEUR."))
		b.WriteString("\nOverload the reactor or starve it below the gate. Stay hidden.\n")
	} else {
		b.WriteString(okStyle.Render("You are CREW."))
		b.WriteString("\nClear four rounds and keep the reactor from overloading.\n")
	}
	if local != nil {
		b.WriteString(fmt.Sprintf("\nYour job: %s, carrying the %s.\n", local.Job, local.ItemID))
	}
	return b.String()
}

func (m Model) viewPlan(snap engine.Snapshot) string {
	var b strings.Builder
	if snap.LastRound != nil {
		b.WriteString(outcomeLine(*snap.LastRound))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Choose your power card (round %d gate is %d):\n\n  ",
		snap.RoundIndex, snap.Round.Gate))
	for i, c := range snap.Hand {
		card := fmt.Sprintf(" %d ", c)
		switch {
		case c == snap.Round.LocalCard:
			card = okStyle.Render("[" + card + "]")
		case i == m.handCursor:
			card = selectedStyle.Render(card)
		default:
			card = subtleStyle.Render(card)
		}
		b.WriteString(card)
		b.WriteString(" ")
	}
	b.WriteString(fmt.Sprintf("\n\n%d/%d seats committed",
		snap.Round.CardsChosen, len(snap.Players)))
	if snap.Round.LocalCard == 0 {
		b.WriteString(subtleStyle.Render("  (choose a card before locking)"))
	}
	return b.String()
}

func (m Model) viewIgnition(snap engine.Snapshot) string {
	var b strings.Builder
	r := snap.Round
	b.WriteString(fmt.Sprintf("Ignition: the crew fed %d units into the core.\n\n",
		r.TotalBeforeItems))
	b.WriteString(gauge("reactor", r.ReactorEnergy01, 30, 0.55, 0.9))
	b.WriteString("\n\n")
	switch {
	case r.TotalAfterItems >= float64(snap.ReactorLimit):
		b.WriteString(dangerStyle.Render("The core is past its limit. Vent now or lose it."))
	case r.TotalAfterItems >= float64(r.Gate):
		b.WriteString(okStyle.Render("Output is above the gate."))
	default:
		b.WriteString(warnStyle.Render("Output is under the gate. The round will fail as it stands."))
	}
	return b.String()
}

func (m Model) viewEngage(snap engine.Snapshot) string {
	var b strings.Builder
	r := snap.Round
	b.WriteString(fmt.Sprintf("Engage: running total %.2f (gate %d, limit %d)\n\n",
		r.TotalAfterItems, r.Gate, snap.ReactorLimit))

	for _, p := range snap.Players {
		marker := "  "
		if p.Seat == snap.EngageSeat {
			marker = "> "
		}
		item := fmt.Sprintf("%s ready", p.ItemID)
		if p.ItemUsed {
			item = subtleStyle.Render(string(p.ItemID) + " spent")
		}
		b.WriteString(fmt.Sprintf("%s%-8s %-8s %s\n", marker, p.Name, p.Job, item))
	}

	local := localPlayer(snap)
	if local != nil && local.Seat == snap.EngageSeat && !local.ItemUsed {
		b.WriteString(fmt.Sprintf("\nYour turn: engage the %s or pass.", local.ItemID))
	}
	return b.String()
}

func (m Model) viewMaintenance(snap engine.Snapshot) string {
	var b strings.Builder
	r := snap.Round
	b.WriteString("Maintenance report\n\n")
	b.WriteString(fmt.Sprintf("  fed into core: %d\n", r.TotalBeforeItems))
	for _, res := range r.Results {
		b.WriteString(fmt.Sprintf("  %s engaged %s: %s (%+.2f output",
			playerName(snap, res.PlayerID), res.ItemID, res.Tier, res.DeltaTotal))
		if res.DeltaShip01 != 0 {
			b.WriteString(fmt.Sprintf(", %+.2f hull", res.DeltaShip01))
		}
		b.WriteString(")\n")
	}
	b.WriteString(fmt.Sprintf("\n  final output %.2f against gate %d, limit %d\n",
		r.TotalAfterItems, r.Gate, snap.ReactorLimit))
	return b.String()
}

func (m Model) viewGameOver(snap engine.Snapshot) string {
	var b strings.Builder
	if snap.CrewWins {
		b.WriteString(okStyle.Render("THE CREW HOLDS THE CORE"))
	} else {
		b.WriteString(saboteurStyle.Render("THE SABOTEUR WINS"))
	}
	b.WriteString("\n\n")

	var saboteur engine.PlayerView
	for _, p := range snap.Players {
		if p.ID == snap.Saboteur {
			saboteur = p
		}
	}
	b.WriteString(fmt.Sprintf("The saboteur was %s, the %s.\n\n", saboteur.Name, saboteur.Job))
	b.WriteString(fmt.Sprintf("rounds %d   clears %d   overloads %d   hull %.0f%%\n",
		snap.RoundIndex, snap.Clears, snap.Overloads, snap.ShipHealth01*100))
	if snap.LastRound != nil {
		b.WriteString("\n")
		b.WriteString(outcomeLine(*snap.LastRound))
	}
	return b.String()
}

func outcomeLine(r engine.RoundView) string {
	switch r.Outcome {
	case engine.OutcomeClear:
		return okStyle.Render(fmt.Sprintf("Round %d cleared (%.2f vs gate %d).",
			r.Index, r.TotalAfterItems, r.Gate))
	case engine.OutcomeOverload:
		return dangerStyle.Render(fmt.Sprintf("Round %d OVERLOADED the core (%.2f).",
			r.Index, r.TotalAfterItems))
	case engine.OutcomeFail:
		return warnStyle.Render(fmt.Sprintf("Round %d fell short of the gate (%.2f vs %d).",
			r.Index, r.TotalAfterItems, r.Gate))
	}
	return ""
}

func phaseHelp(p engine.Phase) string {
	switch p {
	case engine.PhaseLobby:
		return "[n] rename  [1/2/3] pick job  [enter] launch  [q] quit"
	case engine.PhaseRoleReveal:
		return "[enter] continue"
	case engine.PhasePlan:
		return "[←/→] browse  [space] choose  [enter] lock plan  [q] quit"
	case engine.PhaseIgnition:
		return "[enter] engage items"
	case engine.PhaseEngage:
		return "[e] engage item  [p] pass  [q] quit"
	case engine.PhaseMaintenance:
		return "[enter] run maintenance"
	case engine.PhaseGameOver:
		return "[r] play again  [q] quit"
	}
	return ""
}

// Run starts the Bubble Tea program for a local session.
func Run(eng *engine.Engine, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(eng, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
