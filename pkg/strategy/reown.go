package strategy

import (
	"time"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// NewReownStrategy returns the Reown AppKit replacement tables. AppKit
// projects configure their modal through createAppKit, so the factory
// call rewrites to a provider block just like the component does.
func NewReownStrategy(targetVersion string, estimate time.Duration) ReplacementStrategy {
	if targetVersion == "" {
		targetVersion = DefaultTargetVersion
	}
	if estimate == 0 {
		estimate = 15 * time.Minute
	}
	return &tableStrategy{
		name:         "reown",
		tag:          types.TagReown,
		fingerprints: []string{"reown", "appkit"},
		importSymbols: map[string]string{
			"AppKitProvider":    "ParaProvider",
			"createAppKit":      "ParaProvider",
			"useAppKit":         "useModal",
			"useAppKitAccount":  "useAccount",
			"useAppKitProvider": "useClient",
			"useDisconnect":     "useLogout",
			"useWalletInfo":     "useWallet",
		},
		componentMap: map[string]string{
			"AppKitProvider": "ParaProvider",
			"createAppKit":   "ParaProvider",
		},
		hookMap: map[string]string{
			"useAppKit":         "useModal",
			"useAppKitAccount":  "useAccount",
			"useAppKitProvider": "useClient",
			"useDisconnect":     "useLogout",
			"useWalletInfo":     "useWallet",
		},
		estimate:      estimate,
		targetVersion: targetVersion,
	}
}
