package dispatch

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cmdTryOption = "/tryoption"
	cmdFixOption = "/fixoption"

	msgOwnerOnly     = "⛔ Only the owner can use this command."
	msgUsage         = "Usage: /tryoption <1|2> or /fixoption <1|2>"
	msgInvalidOption = "❌ Invalid option. Choose 1 or 2."
)

// HandleOption applies /tryoption and /fixoption. Anyone but the owner gets a
// refusal and no state changes; malformed input gets the usage text. With no
// owner configured the admin surface is closed entirely.
func (d *Dispatcher) HandleOption(userID, command string) string {
	if d.ownerID == "" || userID != d.ownerID {
		return msgOwnerOnly
	}

	parts := strings.Fields(strings.TrimSpace(command))
	if len(parts) != 2 || (parts[0] != cmdTryOption && parts[0] != cmdFixOption) {
		return msgUsage
	}
	option, ok := parseOption(parts[1])
	if !ok {
		return msgInvalidOption
	}

	if parts[0] == cmdTryOption {
		d.state.SetOverride(option)
		log.Info().Int("option", int(option)).Msg("temporary override set")
		return fmt.Sprintf("✅ Temporary model switched to Option %d (for owner only).", option)
	}
	d.state.SetGlobal(option)
	log.Info().Int("option", int(option)).Msg("global option set")
	return fmt.Sprintf("✅ Global model permanently changed to Option %d.", option)
}

// parseOption accepts exactly the literals "1" and "2".
func parseOption(s string) (Option, bool) {
	switch s {
	case "1":
		return OptionDeepInfra, true
	case "2":
		return OptionGPT4Free, true
	}
	return 0, false
}
