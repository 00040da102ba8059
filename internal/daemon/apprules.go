// SPDX-License-Identifier: MPL-2.0

package daemon

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cwm/internal/action"
	"cwm/internal/config"
	"cwm/internal/model"
	"cwm/internal/shortcut"
)

// matchAppRule returns the first rule whose AppPrefix is a
// case-insensitive prefix of app.Name (spec §4.9.2), or false if none
// match.
func matchAppRule(app model.AppInfo, rules []config.AppRuleConfig) (config.AppRuleConfig, bool) {
	name := strings.ToLower(app.Name)
	for _, rule := range rules {
		if strings.HasPrefix(name, strings.ToLower(rule.AppPrefix)) {
			return rule, true
		}
	}
	return config.AppRuleConfig{}, false
}

// ruleDelay resolves a rule's delay, falling back to the config's global
// InitialDelayMS when the rule doesn't override it.
func ruleDelay(rule config.AppRuleConfig, cfg *config.Config) time.Duration {
	ms := cfg.InitialDelayMS
	if rule.DelayMS != nil {
		ms = *rule.DelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

// triggerAppRule waits delay (honoring ctx cancellation), then builds
// and dispatches rule's action against app. It runs as its own
// goroutine per launch event so a slow or retried action for one app
// never delays evaluating the next launch.
func triggerAppRule(ctx context.Context, dispatcher *action.Dispatcher, ec action.ExecutionContext, app model.AppInfo, rule config.AppRuleConfig, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	// Minted the same way a hotkey press mints one: there is no wire
	// request behind an app-rule trigger, but it dispatches through the
	// same path an IPC "action" method call would.
	requestID := uuid.NewString()

	parsed, err := shortcut.Parse(rule.Action)
	if err != nil {
		ec.Logger.Error("app rule has an invalid action", "request_id", requestID, "app_prefix", rule.AppPrefix, "action", rule.Action, "error", err)
		return
	}
	cmd, err := parsed.ToCommand(app.Name, nil)
	if err != nil {
		ec.Logger.Error("app rule action could not be built", "request_id", requestID, "app_prefix", rule.AppPrefix, "error", err)
		return
	}

	if _, actErr := dispatcher.Execute(ctx, cmd, ec); actErr != nil {
		ec.Logger.Warn("app rule action failed", "request_id", requestID, "app", app.Name, "action", rule.Action, "error", actErr.Error())
	}
}
