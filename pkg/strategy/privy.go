package strategy

import (
	"time"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// NewPrivyStrategy returns the Privy replacement tables. Privy ships one
// auth package whose provider wraps the app, so the mapping is close to
// one-to-one.
func NewPrivyStrategy(targetVersion string, estimate time.Duration) ReplacementStrategy {
	if targetVersion == "" {
		targetVersion = DefaultTargetVersion
	}
	if estimate == 0 {
		estimate = 10 * time.Minute
	}
	return &tableStrategy{
		name:         "privy",
		tag:          types.TagPrivy,
		fingerprints: []string{"privy"},
		importSymbols: map[string]string{
			"PrivyProvider":  "ParaProvider",
			"usePrivy":       "useAccount",
			"useWallets":     "useWallet",
			"useLogin":       "useModal",
			"useLogout":      "useLogout",
			"useSignMessage": "useSignMessage",
		},
		componentMap: map[string]string{
			"PrivyProvider": "ParaProvider",
		},
		hookMap: map[string]string{
			"usePrivy":       "useAccount",
			"useWallets":     "useWallet",
			"useLogin":       "useModal",
			"useLogout":      "useLogout",
			"useSignMessage": "useSignMessage",
		},
		estimate:      estimate,
		targetVersion: targetVersion,
	}
}
