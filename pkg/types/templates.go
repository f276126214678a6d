package types

// DefaultInfoTemplate renders a SandboxInfo for humans.
const DefaultInfoTemplate = `Sandbox Root:    {{ .Root }}
Install Policy:  {{ .Policy }}
Executable:      {{ .Executable }}{{ if not .ExecutableReady }} (not installed){{ end }}
Version:         {{ default "Unknown" .Version }}
Helper Library:  {{ .HelperLibrary }} ({{ if .HelperLibraryFound }}Found{{ else }}Not Found{{ end }})
Running PIDs:    {{ if .RunningPIDs }}{{ .RunningPIDs | join ", " }}{{ else }}None{{ end }}
`
