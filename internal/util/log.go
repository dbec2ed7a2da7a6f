package util

const (
	ComponentKey           string = "component"
	ComponentMain          string = "main"
	ComponentCli           string = "cli"
	ComponentCaller        string = "backend caller"
	ComponentPkiClient     string = "pki client"
	ComponentTokenProvider string = "token provider"
	ComponentInventory     string = "certificate inventory"
	ComponentArchive       string = "pem archive"
	ComponentHealth        string = "backend health"
	ComponentCert          string = "certificate builder"

	PackageKey         string = "package"
	PackageMain        string = "main"
	PackageCli         string = "cli"
	PackageConnect     string = "connect"
	PackagePki         string = "pki"
	PackageAuth        string = "auth"
	PackageInventory   string = "inventory"
	PackageArchive     string = "archive"
	PackageDiagnostics string = "diagnostics"
	PackageSign        string = "sign"
	PackageValidate    string = "validate"

	FrameworkKey      string = "framework"
	FrameworkPalisade string = "palisade"
)
