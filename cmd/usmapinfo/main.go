package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/unrealkit/usmap/internal/binary"
	"github.com/unrealkit/usmap/mappings"
	"github.com/unrealkit/usmap/zen"
)

var stdoutIsTerminal = term.IsTerminal(int(os.Stdout.Fd()))

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7D56F4"))

// heading styles a section label, but only when stdout is a terminal so
// piped output stays plain.
func heading(s string) string {
	if !stdoutIsTerminal {
		return s
	}
	return headingStyle.Render(s)
}

func main() {
	var (
		file        = flag.String("file", "", "Path to .usmap mappings file")
		list        = flag.Bool("list", false, "List schema names in table order")
		namesDump   = flag.Bool("names", false, "Dump the name table")
		enumsDump   = flag.Bool("enums", false, "Dump enums with their members")
		schemaName  = flag.String("schema", "", "Show one schema with its super chain")
		resolveName = flag.String("resolve", "", "Resolve a property name against -ancestry")
		ancestryStr = flag.String("ancestry", "", "Ancestry chain for -resolve, innermost first (A,B,C)")
		dup         = flag.Uint("dup", 0, "Duplication index for -resolve")
		stats       = flag.Bool("stats", false, "Table counts and property type histogram")
		assetFile   = flag.String("asset", "", "Classify a cooked asset and check it against the mappings")
		ue53        = flag.Bool("ue53", true, "Asset summary uses the 5.3+ layout (with -asset)")
		interactive = flag.Bool("i", false, "Interactive schema browser")
		verbose     = flag.Bool("v", false, "Verbose decode logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: usmapinfo -file <mappings.usmap> [-list] [-names] [-enums] [-stats]")
		fmt.Fprintln(os.Stderr, "       usmapinfo -file <mappings.usmap> -schema <name>")
		fmt.Fprintln(os.Stderr, "       usmapinfo -file <mappings.usmap> -resolve <prop> -ancestry <A,B,C> [-dup N]")
		fmt.Fprintln(os.Stderr, "       usmapinfo -file <mappings.usmap> -asset <file.uasset> [-ue53=false]")
		fmt.Fprintln(os.Stderr, "       usmapinfo -file <mappings.usmap> -i  (interactive browser)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		mappings.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err := run(*file, *schemaName, *resolveName, *ancestryStr, *assetFile,
		*dup, *list, *namesDump, *enumsDump, *stats, *ue53)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file, schemaName, resolveName, ancestryStr, assetFile string,
	dup uint, list, namesDump, enumsDump, stats, ue53 bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	m, err := mappings.Parse(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	printSummary(m, file)

	if list {
		printList(m)
	}
	if namesDump {
		printNames(m)
	}
	if enumsDump {
		printEnums(m)
	}
	if schemaName != "" {
		if err := printSchema(m, schemaName); err != nil {
			return err
		}
	}
	if resolveName != "" {
		resolveProperty(m, resolveName, ancestryStr, uint32(dup))
	}
	if stats {
		printStats(m)
	}
	if assetFile != "" {
		if err := inspectAsset(assetFile, ue53); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(m *mappings.MappingFile, file string) {
	fmt.Printf("%s %s\n", heading("Mappings:"), file)

	variant := "official"
	if m.Unofficial {
		variant = "unofficial dumper"
	}
	fmt.Printf("Version: %s (%s)\n", m.Version, variant)
	fmt.Printf("Compression: %s\n", m.Compression)
	fmt.Printf("Names: %d\n", len(m.Names))
	fmt.Printf("Enums: %d\n", m.Enums.Len())
	fmt.Printf("Schemas: %d\n", m.Schemas.Len())

	if m.ObjectVersion != mappings.ObjectVersionUnknown || m.ObjectVersionUE5 != mappings.ObjectVersionUE5Unknown {
		fmt.Printf("Object version: %d, UE5 %d, net CL %d\n", m.ObjectVersion, m.ObjectVersionUE5, m.NetCL)
	}
	if len(m.CustomVersions) > 0 {
		fmt.Printf("Custom versions: %d\n", len(m.CustomVersions))
	}
	if m.ExtensionFlags.Has(mappings.ExtensionPaths) {
		fmt.Println("Extensions: module paths")
	}
}

func printList(m *mappings.MappingFile) {
	fmt.Printf("\n%s\n", heading("Schemas:"))
	for _, name := range m.Schemas.Keys() {
		fmt.Printf("  %s\n", name)
	}
}

func printNames(m *mappings.MappingFile) {
	fmt.Printf("\n%s\n", heading("Names:"))
	for i, name := range m.Names {
		fmt.Printf("  [%d] %s\n", i, name)
	}
}

func printEnums(m *mappings.MappingFile) {
	fmt.Printf("\n%s\n", heading("Enums:"))
	for _, name := range m.Enums.Keys() {
		members, _ := m.Enums.GetByKey(name)
		fmt.Printf("  %s (%d members)\n", name, len(members))
		for _, member := range members {
			fmt.Printf("    %s\n", member)
		}
	}
}

func printSchema(m *mappings.MappingFile, name string) error {
	s, ok := m.Schemas.GetByKey(name)
	if !ok {
		return fmt.Errorf("schema %q not in the table", name)
	}

	fmt.Printf("\n%s %s\n", heading("Schema:"), s.Name)
	fmt.Printf("Super chain: %s\n", strings.Join(superChain(m, name), " -> "))
	if s.ModulePath != nil {
		fmt.Printf("Module: %s\n", *s.ModulePath)
	}

	own := s.Properties.Values()
	fmt.Printf("Own properties (%d slots declared, %d serialized):\n", s.PropCount, len(own))
	for _, p := range own {
		slot := fmt.Sprintf("[%d]", p.SchemaIndex)
		if p.ArraySize > 1 {
			slot = fmt.Sprintf("[%d] (%d/%d)", p.SchemaIndex, p.ArrayIndex+1, p.ArraySize)
		}
		fmt.Printf("  %s %s: %s\n", slot, p.Name, p.Data.String())
	}

	if inherited := len(m.AllProperties(name)) - len(own); inherited > 0 {
		fmt.Printf("Inherited: %d more\n", inherited)
	}
	return nil
}

func resolveProperty(m *mappings.MappingFile, name, ancestryStr string, dup uint32) {
	var ancestry mappings.Ancestry
	for _, part := range strings.Split(ancestryStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ancestry = append(ancestry, part)
		}
	}

	fmt.Printf("\n%s %s (ancestry %v, dup %d)\n", heading("Resolve:"), name, []string(ancestry), dup)
	p, idx, ok := m.PropertyWithDuplicationIndex(name, ancestry, dup)
	if !ok {
		fmt.Println("Not found")
		return
	}
	fmt.Printf("Property: %s: %s\n", p.Name, p.Data.String())
	fmt.Printf("Global index: %d\n", idx)
	if p.ArraySize > 1 {
		fmt.Printf("Array element %d of %d\n", p.ArrayIndex+1, p.ArraySize)
	}
}

func printStats(m *mappings.MappingFile) {
	counts := make(map[string]int)
	props := 0
	withPath := 0
	for _, s := range m.Schemas.Values() {
		if s.ModulePath != nil {
			withPath++
		}
		for _, p := range s.Properties.Values() {
			counts[p.Data.Type.String()]++
			props++
		}
	}
	members := 0
	for _, values := range m.Enums.Values() {
		members += len(values)
	}

	fmt.Printf("\n%s\n", heading("Stats:"))
	fmt.Printf("Property slots: %d across %d schemas\n", props, m.Schemas.Len())
	fmt.Printf("Enum members: %d across %d enums\n", members, m.Enums.Len())
	if withPath > 0 {
		fmt.Printf("Schemas with module paths: %d\n", withPath)
	}
	fmt.Println("Serves unversioned-property packages: property layout resolves by schema, not by tags")

	type typeCount struct {
		name string
		n    int
	}
	histogram := make([]typeCount, 0, len(counts))
	for name, n := range counts {
		histogram = append(histogram, typeCount{name, n})
	}
	sort.Slice(histogram, func(i, j int) bool {
		if histogram[i].n != histogram[j].n {
			return histogram[i].n > histogram[j].n
		}
		return histogram[i].name < histogram[j].name
	})
	for _, tc := range histogram {
		fmt.Printf("  %7d %s\n", tc.n, tc.name)
	}
}

// inspectAsset classifies a cooked asset and reports whether it can only
// be read with a mappings file.
func inspectAsset(file string, ue53 bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}

	fmt.Printf("\n%s %s\n", heading("Asset:"), file)
	format := zen.DetectFormat(data)
	fmt.Printf("Format: %s\n", format)

	if format == zen.FormatTraditional {
		fmt.Println("Traditional serialization carries its own property tags; mappings not required.")
		return nil
	}

	s, err := zen.ReadPackageSummary(binary.NewReader(data), ue53)
	if err != nil {
		return fmt.Errorf("read package summary: %w", err)
	}

	fmt.Printf("Header size: %d (cooked %d)\n", s.HeaderSize, s.CookedHeaderSize)
	fmt.Printf("Package name: table index %d", s.Name.NameIndex())
	if s.Name.Number != 0 {
		fmt.Printf(" (instance %d)", s.Name.Number)
	}
	if s.Name.IsGlobal() {
		fmt.Print(", global table")
	}
	fmt.Println()
	fmt.Printf("Flags: 0x%08x%s\n", uint32(s.PackageFlags), flagNames(s.PackageFlags))

	if s.PackageFlags.NeedsMappings() {
		fmt.Println("Needs mappings: yes, exports resolve only against a schema table")
	} else {
		fmt.Println("Needs mappings: no")
	}
	return nil
}

func flagNames(f zen.PackageFlags) string {
	known := []struct {
		flag zen.PackageFlags
		name string
	}{
		{zen.PKG_Cooked, "Cooked"},
		{zen.PKG_UnversionedProperties, "UnversionedProperties"},
		{zen.PKG_ContainsMap, "ContainsMap"},
		{zen.PKG_FilterEditorOnly, "FilterEditorOnly"},
	}

	var names []string
	for _, k := range known {
		if f.Has(k.flag) {
			names = append(names, k.name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return " (" + strings.Join(names, ", ") + ")"
}

// superChain lists name and every declared ancestor, including one the
// table does not define, which ends the chain.
func superChain(m *mappings.MappingFile, name string) []string {
	chain := []string{name}
	cur := name
	for hops := m.Schemas.Len(); hops > 0; hops-- {
		s, ok := m.Schemas.GetByKey(cur)
		if !ok || s.SuperType == "" {
			break
		}
		chain = append(chain, s.SuperType)
		cur = s.SuperType
	}
	return chain
}
