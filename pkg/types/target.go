package types

// Para SDK integration surface every migration converges on. These names
// appear in generated code and in validation messages, so they are fixed
// here rather than configured.
const (
	ParaDependency      = "@getpara/react-sdk"
	ParaProviderName    = "ParaProvider"
	ParaModalName       = "ParaModal"
	ParaStylesheet      = "@getpara/react-sdk/styles.css"
	ParaEnvironmentEnum = "Environment"
)

// ParaHooks lists the hook names the Para SDK exports. Hook rewrites only
// ever target names from this set.
var ParaHooks = []string{
	"useAccount", "useWallet", "useModal", "useClient", "useLogout", "useSignMessage",
}
