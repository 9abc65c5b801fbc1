package views

import (
	"github.com/AdamBeresnev/afcon-predictor/internal/service"
	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
	"github.com/AdamBeresnev/afcon-predictor/internal/utils"
	"github.com/a-h/templ"
)

const kickoffFormat = "Mon 2 Jan, 15:04 MST"

func errorBox(h *htmlWriter, msg string) {
	if msg != "" {
		h.printf(`<p class="error">%s</p>`, esc(msg))
	}
}

func LoginPage(errMsg string) templ.Component {
	return layout("Log in", component(func(h *htmlWriter) {
		h.printf(`<h2>Log in</h2>`)
		errorBox(h, errMsg)
		h.printf(`<form method="post" action="/login">`)
		h.printf(`<label>Username <input name="username" required></label>`)
		h.printf(`<label>Password <input type="password" name="password" required></label>`)
		h.printf(`<button type="submit">Log in</button></form>`)
		h.printf(`<p>Or continue with <a href="/auth/discord">Discord</a> or <a href="/auth/google">Google</a>.</p>`)
		h.printf(`<p>No account yet? <a href="/signup">Sign up</a>.</p>`)
	}))
}

func SignupPage(errMsg string) templ.Component {
	return layout("Sign up", component(func(h *htmlWriter) {
		h.printf(`<h2>Sign up</h2>`)
		errorBox(h, errMsg)
		h.printf(`<form method="post" action="/signup">`)
		h.printf(`<label>Full name <input name="full_name" required></label>`)
		h.printf(`<label>Username <input name="username" required></label>`)
		h.printf(`<label>Password <input type="password" name="password" minlength="8" required></label>`)
		h.printf(`<button type="submit">Create account</button></form>`)
	}))
}

func Index(steps []tournament.Step) templ.Component {
	return layout("Predictions", component(func(h *htmlWriter) {
		h.printf(`<h2>Your predictions</h2><ol class="steps">`)
		for _, step := range steps {
			h.printf(`<li><a href="/predictions/%s">%s</a></li>`, step.Slug(), esc(step.Title()))
		}
		h.printf(`</ol>`)
	}))
}

func StepPage(data *service.StepData) templ.Component {
	title := data.Step.Title()
	return layout(title, component(func(h *htmlWriter) {
		h.printf(`<h2>%s (%d/%d)</h2>`, esc(title), data.Index+1, data.Total)
		if len(data.Matches) == 0 {
			h.printf(`<p>No matches for this stage yet.</p>`)
		}
		for _, row := range data.Matches {
			h.render(PredictionForm(row, ""))
		}
		h.printf(`<div class="wizard-nav">`)
		if data.Prev != nil {
			h.printf(`<a href="/predictions/%s">Back</a>`, data.Prev.Slug())
		} else {
			h.printf(`<span></span>`)
		}
		if data.Next != nil {
			h.printf(`<a href="/predictions/%s">Next</a>`, data.Next.Slug())
		}
		h.printf(`</div>`)
	}))
}

// PredictionForm is swapped in place by htmx after every submission
func PredictionForm(row service.MatchPrediction, message string) templ.Component {
	return component(func(h *htmlWriter) {
		m := row.Match
		p := row.Prediction

		var home, away, pensHome, pensAway string
		if p != nil {
			home, away = intValue(p.PredHome), intValue(p.PredAway)
			pensHome, pensAway = utils.IntString(p.PredPensHome), utils.IntString(p.PredPensAway)
		}

		h.printf(`<form class="match" hx-post="/predictions" hx-swap="outerHTML">`)
		h.printf(`<input type="hidden" name="match_id" value="%s">`, m.ID)
		h.printf(`<p class="kickoff">%s</p>`, esc(m.KickoffAt.Format(kickoffFormat)))
		if m.Stage.IsKnockout() {
			h.printf(`<p class="hint">Score is after extra time (120')</p>`)
		}
		h.printf(`<div class="row"><span>%s</span>%s<span>vs</span>%s<span>%s</span></div>`,
			esc(m.HomeTeamName),
			scoreInput("pred_home", home, row.Locked, true),
			scoreInput("pred_away", away, row.Locked, true),
			esc(m.AwayTeamName))
		if m.Stage.IsKnockout() {
			h.printf(`<div class="row pens"><strong>If draw after 120', enter penalties</strong></div>`)
			h.printf(`<div class="row"><span>%s</span>%s<span>–</span>%s<span>%s</span></div>`,
				esc(m.HomeTeamName),
				scoreInput("pred_pens_home", pensHome, row.Locked, false),
				scoreInput("pred_pens_away", pensAway, row.Locked, false),
				esc(m.AwayTeamName))
		}

		label := "Save"
		switch {
		case row.Locked:
			label = "Locked"
		case p != nil:
			label = "Update"
		}
		disabled := ""
		if row.Locked {
			disabled = " disabled"
		}
		h.printf(`<button type="submit"%s>%s</button>`, disabled, label)
		if message != "" {
			h.printf(` <span class="message">%s</span>`, esc(message))
		}
		h.printf(`</form>`)
	})
}

func LeaderboardPage(entries []service.RankedEntry) templ.Component {
	return layout("Leaderboard", component(func(h *htmlWriter) {
		h.printf(`<h2>Leaderboard</h2>`)
		if len(entries) == 0 {
			h.printf(`<p>Leaderboard not available.</p>`)
			return
		}
		h.printf(`<table><thead><tr><th>Rank</th><th>Participant</th><th class="num">Points</th></tr></thead><tbody>`)
		for _, e := range entries {
			h.printf(`<tr><td>%d</td><td>%s (%s)</td><td class="num">%d</td></tr>`,
				e.Rank, esc(e.FullName), esc(e.Username), e.TotalPoints)
		}
		h.printf(`</tbody></table>`)
	}))
}

func AdminResultsPage(sections []StageSection, errMsg string) templ.Component {
	return layout("Results", component(func(h *htmlWriter) {
		h.printf(`<h2>Enter real match results</h2>`)
		errorBox(h, errMsg)
		if len(sections) == 0 {
			h.printf(`<p>No matches defined.</p>`)
			return
		}
		for _, section := range sections {
			h.printf(`<h3>%s</h3>`, esc(section.Step.Title()))
			for _, m := range section.Matches {
				h.render(resultForm(m))
			}
		}
	}))
}

func resultForm(m tournament.Match) templ.Component {
	return component(func(h *htmlWriter) {
		h.printf(`<form class="match" method="post" action="/admin/results">`)
		h.printf(`<input type="hidden" name="match_id" value="%s">`, m.ID)
		h.printf(`<p class="kickoff">%s</p>`, esc(m.KickoffAt.Format(kickoffFormat)))
		h.printf(`<div class="row"><span>%s</span>%s<span>vs</span>%s<span>%s</span></div>`,
			esc(m.HomeTeamName),
			scoreInput("result_home", utils.IntString(m.ResultHome), false, true),
			scoreInput("result_away", utils.IntString(m.ResultAway), false, true),
			esc(m.AwayTeamName))
		if m.Stage.IsKnockout() {
			h.printf(`<div class="row pens"><strong>Penalties (leave blank if not decided by penalties)</strong></div>`)
			h.printf(`<div class="row"><span>%s</span>%s<span>–</span>%s<span>%s</span></div>`,
				esc(m.HomeTeamName),
				scoreInput("result_pens_home", utils.IntString(m.ResultPensHome), false, false),
				scoreInput("result_pens_away", utils.IntString(m.ResultPensAway), false, false),
				esc(m.AwayTeamName))
		}
		h.printf(`<button type="submit">Save result</button>`)
		if m.HasResult() {
			h.printf(` <button type="submit" name="clear" value="1" formnovalidate>Clear result</button>`)
		}
		h.printf(`</form>`)
	})
}
