package reqif

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/FocuswithJustin/ReqIF/core/errors"
	"github.com/FocuswithJustin/ReqIF/internal/logging"
)

func readSample(t *testing.T) *ReqIF {
	t.Helper()
	f, err := os.Open("testdata/sample.reqif")
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	defer f.Close()
	doc, err := NewCodec(Options{}).Read(f)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return doc
}

func writeString(t *testing.T, doc *ReqIF) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewCodec(Options{}).Write(&buf, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func readString(t *testing.T, s string) *ReqIF {
	t.Helper()
	doc, err := NewCodec(Options{}).Read(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return doc
}

// minimal wraps REQ-IF-CONTENT children in a document.
func minimal(content string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<REQ-IF xmlns="` + Namespace + `"><CORE-CONTENT><REQ-IF-CONTENT>` + content + `</REQ-IF-CONTENT></CORE-CONTENT></REQ-IF>`
}

func TestReadSample(t *testing.T) {
	doc := readSample(t)
	c := doc.CoreContent

	if doc.Lang != "en" {
		t.Errorf("Lang = %q, want %q", doc.Lang, "en")
	}
	if doc.TheHeader == nil || doc.TheHeader.Title != "Brakes" {
		t.Fatalf("TheHeader = %+v", doc.TheHeader)
	}
	if doc.TheHeader.CreationTime.IsZero() {
		t.Error("CreationTime not parsed")
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"DataTypes", len(c.DataTypes), 7},
		{"SpecTypes", len(c.SpecTypes), 4},
		{"SpecObjects", len(c.SpecObjects), 2},
		{"SpecRelations", len(c.SpecRelations), 1},
		{"Specifications", len(c.Specifications), 1},
		{"SpecRelationGroups", len(c.SpecRelationGroups), 1},
		{"ToolExtensions", len(doc.ToolExtensions), 1},
	}
	for _, tt := range counts {
		if tt.got != tt.want {
			t.Errorf("len(%s) = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	req1 := c.LookupSpecObject("REQ-1")
	req2 := c.LookupSpecObject("REQ-2")
	if req1 == nil || req2 == nil {
		t.Fatal("spec objects not registered")
	}
	if req1.Description != "Stopping distance" || req1.LastChange.IsZero() {
		t.Errorf("REQ-1 identity = %+v", req1.Identifiable)
	}
	if req1.AlternativeID == nil || req1.AlternativeID.Identifier != "legacy-1" {
		t.Errorf("AlternativeID = %+v", req1.AlternativeID)
	}
	if got := len(req1.Values()); got != 7 {
		t.Fatalf("len(REQ-1 values) = %d, want 7", got)
	}

	rel := c.LookupSpecRelation("REL-1")
	if rel.Source != req1 || rel.Target != req2 {
		t.Error("relation endpoints must be the registered spec objects")
	}
	if rel.Type() != c.LookupSpecType("SRT-TRACE") {
		t.Error("relation type not shared")
	}

	sot := c.LookupSpecType("SOT-REQ")
	if req1.Type() != sot || req2.Type() != sot {
		t.Error("spec object type not shared")
	}
	adID := sot.LookupAttribute("AD-ID")
	if adID.Type() != c.LookupDatatype("DT-STRING") {
		t.Error("attribute definition datatype not shared")
	}
	def, ok := adID.DefaultValue().(*AttributeValueString)
	if !ok || def.TheValue != "TBD" || def.Definition() != adID {
		t.Errorf("DefaultValue = %#v", adID.DefaultValue())
	}

	enum := req1.ValueFor(sot.LookupAttribute("AD-PRIORITY")).(*AttributeValueEnumeration)
	if len(enum.Values) != 1 || enum.Values[0] != c.LookupEnumValue("EV-HIGH") {
		t.Errorf("enumeration values = %v", enum.Values)
	}
	if enum.Values[0].Properties == nil || enum.Values[0].Properties.OtherContent != "red" {
		t.Errorf("enum properties = %+v", enum.Values[0].Properties)
	}

	text := req1.ValueFor(sot.LookupAttribute("AD-TEXT")).(*AttributeValueXHTML)
	if got, want := text.PlainText(), "The car shall stop."; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
	objects, err := text.ExternalObjects()
	if err != nil {
		t.Fatalf("ExternalObjects() error = %v", err)
	}
	if len(objects) != 1 || objects[0].URI() != "images/stop chart.png" || objects[0].MimeType() != "image/png" {
		t.Errorf("ExternalObjects() = %v", objects)
	}

	intDT := c.LookupDatatype("DT-INT").(*DatatypeDefinitionInteger)
	if intDT.Min == nil || *intDT.Min != 0 || intDT.Max == nil || *intDT.Max != 1000 {
		t.Errorf("integer facets = %v..%v", intDT.Min, intDT.Max)
	}

	spec := c.LookupSpecification("SPEC-1")
	if len(spec.Children) != 1 {
		t.Fatalf("len(spec.Children) = %d", len(spec.Children))
	}
	top := spec.Children[0]
	if top.Container() != nil || top.Specification() != spec || top.Object != req1 {
		t.Error("top-level hierarchy links wrong")
	}
	leaf := top.Children[0]
	if leaf.Container() != top || leaf.Object != req2 || !leaf.IsEditable {
		t.Error("nested hierarchy links wrong")
	}
	if len(leaf.EditableAttributes) != 1 || leaf.EditableAttributes[0] != adID {
		t.Errorf("EditableAttributes = %v", leaf.EditableAttributes)
	}

	group := c.LookupRelationGroup("RG-1")
	if group.SourceSpecification != spec || group.TargetSpecification != spec {
		t.Error("relation group specifications not shared")
	}
	if len(group.SpecRelations) != 1 || group.SpecRelations[0] != rel {
		t.Error("relation group relations not shared")
	}

	want := `<tool:settings xmlns:tool="urn:example:tool" mode="strict"><tool:flag/></tool:settings>`
	if got := doc.ToolExtensions[0].Content; got != want {
		t.Errorf("ToolExtension = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := readSample(t)
	first := writeString(t, doc)
	again := readString(t, first)

	before := entities(doc.CoreContent)
	after := entities(again.CoreContent)
	if len(before) != len(after) {
		t.Fatalf("entity count = %d, want %d", len(after), len(before))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.Identifier != b.Identifier || a.LongName != b.LongName || a.Description != b.Description {
			t.Errorf("entity %d = %+v, want %+v", i, *a, *b)
		}
		if !a.LastChange.Equal(b.LastChange) {
			t.Errorf("entity %s LastChange = %v, want %v", b.Identifier, a.LastChange, b.LastChange)
		}
	}

	if second := writeString(t, again); second != first {
		t.Errorf("second write differs from first:\n%s\n---\n%s", first, second)
	}
}

// entities lists the identity of every registered entity in a stable order.
func entities(c *Content) []*Identifiable {
	var out []*Identifiable
	for _, d := range c.DataTypes {
		out = append(out, d.Identity())
	}
	for _, s := range c.SpecTypes {
		out = append(out, s.Identity())
		for _, d := range s.SpecAttributes() {
			out = append(out, d.Identity())
		}
	}
	for _, o := range c.SpecObjects {
		out = append(out, o.Identity())
	}
	for _, r := range c.SpecRelations {
		out = append(out, r.Identity())
	}
	for _, s := range c.Specifications {
		out = append(out, s.Identity())
		_ = s.Walk(func(h *SpecHierarchy, _ int) error {
			out = append(out, h.Identity())
			return nil
		})
	}
	for _, g := range c.SpecRelationGroups {
		out = append(out, g.Identity())
	}
	return out
}

func TestFallbackStandIn(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="A"/></SPEC-OBJECTS>
<SPEC-RELATIONS>
  <SPEC-RELATION IDENTIFIER="R">
    <SOURCE><SPEC-OBJECT-REF>A</SPEC-OBJECT-REF></SOURCE>
    <TARGET><SPEC-OBJECT-REF>MISSING</SPEC-OBJECT-REF></TARGET>
    <TYPE><SPEC-RELATION-TYPE-REF>NO-TYPE</SPEC-RELATION-TYPE-REF></TYPE>
  </SPEC-RELATION>
</SPEC-RELATIONS>`))
	c := doc.CoreContent
	rel := c.LookupSpecRelation("R")

	if rel.Target == nil {
		t.Fatal("dangling target must resolve to a stand-in")
	}
	if rel.Target.Identifier != "MISSING" || rel.Target.Description == "" {
		t.Errorf("stand-in = %+v", rel.Target.Identifiable)
	}
	if c.LookupSpecObject("MISSING") != rel.Target {
		t.Error("stand-in must be registered")
	}
	if len(c.SpecObjects) != 2 {
		t.Errorf("len(SpecObjects) = %d, want 2", len(c.SpecObjects))
	}

	st, ok := rel.Type().(*SpecRelationType)
	if !ok || st.Identifier != "NO-TYPE" || st.Description == "" {
		t.Errorf("type stand-in = %#v", rel.Type())
	}
}

func TestFallbackDatatypeMatchesKind(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-TYPES>
  <SPEC-OBJECT-TYPE IDENTIFIER="T">
    <SPEC-ATTRIBUTES>
      <ATTRIBUTE-DEFINITION-REAL IDENTIFIER="AD">
        <TYPE><DATATYPE-DEFINITION-REAL-REF>GONE</DATATYPE-DEFINITION-REAL-REF></TYPE>
      </ATTRIBUTE-DEFINITION-REAL>
    </SPEC-ATTRIBUTES>
  </SPEC-OBJECT-TYPE>
</SPEC-TYPES>`))
	dt := doc.CoreContent.LookupDatatype("GONE")
	if _, ok := dt.(*DatatypeDefinitionReal); !ok {
		t.Fatalf("stand-in datatype = %#v, want *DatatypeDefinitionReal", dt)
	}
	if doc.CoreContent.LookupAttributeDefinition("AD").Type() != dt {
		t.Error("definition must reference the stand-in")
	}
}

func TestHierarchyObjectNullable(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="A"/></SPEC-OBJECTS>
<SPECIFICATIONS>
  <SPECIFICATION IDENTIFIER="S">
    <CHILDREN>
      <SPEC-HIERARCHY IDENTIFIER="H1"><OBJECT><SPEC-OBJECT-REF>A</SPEC-OBJECT-REF></OBJECT></SPEC-HIERARCHY>
      <SPEC-HIERARCHY IDENTIFIER="H2"><OBJECT><SPEC-OBJECT-REF>MISSING</SPEC-OBJECT-REF></OBJECT></SPEC-HIERARCHY>
    </CHILDREN>
  </SPECIFICATION>
</SPECIFICATIONS>`))
	c := doc.CoreContent
	spec := c.LookupSpecification("S")

	if spec.Children[0].Object != c.LookupSpecObject("A") {
		t.Error("resolvable object must be shared")
	}
	if spec.Children[1].Object != nil {
		t.Errorf("dangling hierarchy object = %+v, want nil", spec.Children[1].Object)
	}
	if len(c.SpecObjects) != 1 {
		t.Errorf("len(SpecObjects) = %d, want 1 (no stand-in)", len(c.SpecObjects))
	}
}

func TestRelationGroupCountsDanglingRefs(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-RELATIONS><SPEC-RELATION IDENTIFIER="R1"/></SPEC-RELATIONS>
<SPEC-RELATION-GROUPS>
  <RELATION-GROUP IDENTIFIER="G">
    <SPEC-RELATIONS>
      <SPEC-RELATION-REF>R1</SPEC-RELATION-REF>
      <SPEC-RELATION-REF>X1</SPEC-RELATION-REF>
      <SPEC-RELATION-REF>X2</SPEC-RELATION-REF>
    </SPEC-RELATIONS>
    <SOURCE-SPECIFICATION><SPECIFICATION-REF>NOPE</SPECIFICATION-REF></SOURCE-SPECIFICATION>
  </RELATION-GROUP>
</SPEC-RELATION-GROUPS>`))
	g := doc.CoreContent.LookupRelationGroup("G")
	if len(g.SpecRelations) != 3 {
		t.Fatalf("len(SpecRelations) = %d, want 3", len(g.SpecRelations))
	}
	for i, rel := range g.SpecRelations {
		if rel == nil {
			t.Errorf("SpecRelations[%d] is nil", i)
		}
	}
	if g.SourceSpecification == nil || g.SourceSpecification.Identifier != "NOPE" {
		t.Errorf("SourceSpecification = %v", g.SourceSpecification)
	}
	if g.TargetSpecification != nil {
		t.Error("absent TARGET-SPECIFICATION must stay nil")
	}
}

func TestForwardReferenceIsNotMerged(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-RELATIONS>
  <SPEC-RELATION IDENTIFIER="R"><SOURCE><SPEC-OBJECT-REF>LATER</SPEC-OBJECT-REF></SOURCE></SPEC-RELATION>
</SPEC-RELATIONS>
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="LATER" LONG-NAME="full"/></SPEC-OBJECTS>`))
	c := doc.CoreContent
	if len(c.SpecObjects) != 2 {
		t.Fatalf("len(SpecObjects) = %d, want 2", len(c.SpecObjects))
	}
	standIn := c.LookupSpecRelation("R").Source
	if c.LookupSpecObject("LATER") != standIn {
		t.Error("lookup must return the first registered entity")
	}
	if c.SpecObjects[1].LongName != "full" || c.SpecObjects[1] == standIn {
		t.Error("full definition must be a distinct entity")
	}
}

func relationGroupDoc() (*ReqIF, *RelationGroup) {
	doc := NewReqIF()
	c := doc.CoreContent
	g := NewRelationGroup(c)
	g.Identifier = "RG"
	g.LongName = "links"
	if err := g.SetType(NewRelationGroupType(c)); err != nil {
		panic(err)
	}
	g.Type().Identity().Identifier = "RGT"
	return doc, g
}

func TestWriteRelationGroupValidationOrder(t *testing.T) {
	doc, g := relationGroupDoc()

	var buf bytes.Buffer
	err := NewCodec(Options{}).Write(&buf, doc)
	var se *errors.SerializationError
	if !errors.As(err, &se) {
		t.Fatalf("Write() error = %v, want SerializationError", err)
	}
	if se.Missing != "SourceSpecification" || se.Identifier != "RG" || se.LongName != "links" {
		t.Errorf("SerializationError = %+v", se)
	}
	if strings.Contains(buf.String(), "<RELATION-GROUP") {
		t.Error("nothing may be written for the invalid element")
	}

	spec := NewSpecification(doc.CoreContent)
	spec.Identifier = "S"
	st := NewSpecificationType(doc.CoreContent)
	st.Identifier = "ST"
	if err := spec.SetType(st); err != nil {
		t.Fatal(err)
	}
	g.SourceSpecification = spec
	err = NewCodec(Options{}).Write(&bytes.Buffer{}, doc)
	if !errors.As(err, &se) || se.Missing != "TargetSpecification" {
		t.Errorf("Write() error = %v, want missing TargetSpecification", err)
	}
}

func TestValidateSpecElementOrder(t *testing.T) {
	c := NewContent()
	rel := NewSpecRelation(c)

	steps := []struct {
		want  string
		apply func()
	}{
		{"Type", func() { _ = rel.SetType(NewSpecRelationType(c)) }},
		{"Source", func() { rel.Source = NewSpecObject(c) }},
		{"Target", func() { rel.Target = NewSpecObject(c) }},
		{"Identifier", func() { rel.Identifier = "R" }},
	}
	for _, step := range steps {
		err := ValidateSpecElement(rel)
		var se *errors.SerializationError
		if !errors.As(err, &se) || se.Missing != step.want {
			t.Fatalf("ValidateSpecElement() = %v, want missing %s", err, step.want)
		}
		step.apply()
	}
	if err := ValidateSpecElement(rel); err != nil {
		t.Errorf("ValidateSpecElement() = %v, want nil", err)
	}
}

func TestValidateAttributeDefinitionOrder(t *testing.T) {
	c := NewContent()
	d := NewAttributeDefinitionString(NewSpecObjectType(c))
	var se *errors.SerializationError

	if err := ValidateAttributeDefinition(d); !errors.As(err, &se) || se.Missing != "Type" {
		t.Fatalf("ValidateAttributeDefinition() = %v, want missing Type", err)
	}
	if err := d.SetType(NewDatatypeDefinitionString(c)); err != nil {
		t.Fatal(err)
	}
	if err := ValidateAttributeDefinition(d); !errors.As(err, &se) || se.Missing != "Identifier" {
		t.Fatalf("ValidateAttributeDefinition() = %v, want missing Identifier", err)
	}

	v := NewAttributeValueString(nil)
	if err := ValidateAttributeValue(v, nil); !errors.As(err, &se) || se.Missing != "Definition" {
		t.Fatalf("ValidateAttributeValue() = %v, want missing Definition", err)
	}
}

func TestReadContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := os.Open("testdata/sample.reqif")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	doc, err := NewCodec(Options{}).ReadContext(ctx, f)
	if doc != nil {
		t.Error("no document may be returned on cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadContext() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, errors.ErrInvalidInput) {
		t.Error("cancellation must be distinct from malformed input")
	}
}

func TestWriteContextCanceled(t *testing.T) {
	doc := readSample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewCodec(Options{}).WriteContext(ctx, &buf, doc)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WriteContext() error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after cancellation", buf.Len())
	}
}

func TestBlockingAndContextModesAgree(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.reqif")
	if err != nil {
		t.Fatal(err)
	}
	codec := NewCodec(Options{})
	ctx := context.Background()

	syncDoc, err := codec.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	asyncDoc, err := codec.ReadContext(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	var syncOut, asyncOut bytes.Buffer
	if err := codec.Write(&syncOut, syncDoc); err != nil {
		t.Fatal(err)
	}
	if err := codec.WriteContext(ctx, &asyncOut, asyncDoc); err != nil {
		t.Fatal(err)
	}
	if syncOut.String() != asyncOut.String() {
		t.Error("blocking and context modes must emit identical bytes")
	}

	// Same validation failure in both modes.
	bad, _ := relationGroupDoc()
	syncErr := codec.Write(&bytes.Buffer{}, bad)
	asyncErr := codec.WriteContext(ctx, &bytes.Buffer{}, bad)
	if syncErr == nil || asyncErr == nil || syncErr.Error() != asyncErr.Error() {
		t.Errorf("errors differ: %v vs %v", syncErr, asyncErr)
	}
}

func TestUnknownElementSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New(logging.LevelWarn, logging.FormatText, &logs)

	doc, err := NewCodec(Options{Logger: logger}).Read(strings.NewReader(minimal(`
<SPEC-OBJECTS>
  <FUTURE-THING IDENTIFIER="F"><SPEC-OBJECT IDENTIFIER="HIDDEN"/></FUTURE-THING>
  <SPEC-OBJECT IDENTIFIER="A"><EXTRA-CHILD/></SPEC-OBJECT>
</SPEC-OBJECTS>`)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(doc.CoreContent.SpecObjects) != 1 || doc.CoreContent.SpecObjects[0].Identifier != "A" {
		t.Errorf("SpecObjects = %v", doc.CoreContent.SpecObjects)
	}
	out := logs.String()
	for _, want := range []string{"unknown_element", "element=FUTURE-THING", "element=EXTRA-CHILD"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"mismatched end tag", `<REQ-IF><THE-HEADER></CORE-CONTENT></REQ-IF>`},
		{"truncated", `<REQ-IF><CORE-CONTENT><REQ-IF-CONTENT>`},
		{"wrong root", `<DOCUMENT/>`},
		{"bad integer", minimal(`
<SPEC-TYPES><SPEC-OBJECT-TYPE IDENTIFIER="T"><SPEC-ATTRIBUTES>
  <ATTRIBUTE-DEFINITION-INTEGER IDENTIFIER="AD"/>
</SPEC-ATTRIBUTES></SPEC-OBJECT-TYPE></SPEC-TYPES>
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><VALUES>
  <ATTRIBUTE-VALUE-INTEGER THE-VALUE="twelve"><DEFINITION><ATTRIBUTE-DEFINITION-INTEGER-REF>AD</ATTRIBUTE-DEFINITION-INTEGER-REF></DEFINITION></ATTRIBUTE-VALUE-INTEGER>
</VALUES></SPEC-OBJECT></SPEC-OBJECTS>`)},
		{"bad timestamp", minimal(`<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O" LAST-CHANGE="yesterday"/></SPEC-OBJECTS>`)},
		{"undefined attribute definition", minimal(`
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><VALUES>
  <ATTRIBUTE-VALUE-STRING THE-VALUE="x"><DEFINITION><ATTRIBUTE-DEFINITION-STRING-REF>NONE</ATTRIBUTE-DEFINITION-STRING-REF></DEFINITION></ATTRIBUTE-VALUE-STRING>
</VALUES></SPEC-OBJECT></SPEC-OBJECTS>`)},
		{"missing definition", minimal(`
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><VALUES><ATTRIBUTE-VALUE-STRING THE-VALUE="x"/></VALUES></SPEC-OBJECT></SPEC-OBJECTS>`)},
		{"undefined enum value", minimal(`
<SPEC-TYPES><SPEC-OBJECT-TYPE IDENTIFIER="T"><SPEC-ATTRIBUTES>
  <ATTRIBUTE-DEFINITION-ENUMERATION IDENTIFIER="AD" MULTI-VALUED="false"/>
</SPEC-ATTRIBUTES></SPEC-OBJECT-TYPE></SPEC-TYPES>
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><VALUES>
  <ATTRIBUTE-VALUE-ENUMERATION><DEFINITION><ATTRIBUTE-DEFINITION-ENUMERATION-REF>AD</ATTRIBUTE-DEFINITION-ENUMERATION-REF></DEFINITION><VALUES><ENUM-VALUE-REF>NONE</ENUM-VALUE-REF></VALUES></ATTRIBUTE-VALUE-ENUMERATION>
</VALUES></SPEC-OBJECT></SPEC-OBJECTS>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewCodec(Options{}).Read(strings.NewReader(tt.input))
			if doc != nil {
				t.Error("no document may be returned")
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Fatalf("Read() error = %v, want ErrInvalidInput", err)
			}
			var pe *errors.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Read() error = %T, want *ParseError", err)
			}
		})
	}
}

func TestReadDefinitionKindMismatch(t *testing.T) {
	_, err := NewCodec(Options{}).Read(strings.NewReader(minimal(`
<SPEC-TYPES><SPEC-OBJECT-TYPE IDENTIFIER="T"><SPEC-ATTRIBUTES>
  <ATTRIBUTE-DEFINITION-INTEGER IDENTIFIER="AD"/>
</SPEC-ATTRIBUTES></SPEC-OBJECT-TYPE></SPEC-TYPES>
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><VALUES>
  <ATTRIBUTE-VALUE-STRING THE-VALUE="x"><DEFINITION><ATTRIBUTE-DEFINITION-STRING-REF>AD</ATTRIBUTE-DEFINITION-STRING-REF></DEFINITION></ATTRIBUTE-VALUE-STRING>
</VALUES></SPEC-OBJECT></SPEC-OBJECTS>`)))
	if !errors.Is(err, errors.ErrTypeMismatch) {
		t.Fatalf("Read() error = %v, want ErrTypeMismatch", err)
	}
}

func TestReadSpecTypeKindMismatch(t *testing.T) {
	_, err := NewCodec(Options{}).Read(strings.NewReader(minimal(`
<SPEC-TYPES><RELATION-GROUP-TYPE IDENTIFIER="T"/></SPEC-TYPES>
<SPEC-OBJECTS><SPEC-OBJECT IDENTIFIER="O"><TYPE><SPEC-OBJECT-TYPE-REF>T</SPEC-OBJECT-TYPE-REF></TYPE></SPEC-OBJECT></SPEC-OBJECTS>`)))
	if !errors.Is(err, errors.ErrTypeMismatch) {
		t.Fatalf("Read() error = %v, want ErrTypeMismatch", err)
	}
}

func TestWriteDeclaresXHTMLNamespace(t *testing.T) {
	doc := NewReqIF()
	c := doc.CoreContent
	dt := NewDatatypeDefinitionXHTML(c)
	dt.Identifier = "DT"
	sot := NewSpecObjectType(c)
	sot.Identifier = "T"
	def := NewAttributeDefinitionXHTML(sot)
	def.Identifier = "AD"
	if err := def.SetType(dt); err != nil {
		t.Fatal(err)
	}

	plain := writeString(t, doc)
	if strings.Contains(plain, "xmlns:xhtml") {
		t.Error("no xhtml namespace expected without rich text values")
	}

	o := NewSpecObject(c)
	o.Identifier = "O"
	if err := o.SetType(sot); err != nil {
		t.Fatal(err)
	}
	v := NewAttributeValueXHTML(o)
	if err := v.SetDefinition(def); err != nil {
		t.Fatal(err)
	}
	v.TheValue = `<xhtml:p>hi</xhtml:p>`

	out := writeString(t, doc)
	if n := strings.Count(out, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`); n != 1 {
		t.Errorf("xhtml namespace declared %d times, want 1:\n%s", n, out)
	}
	if !strings.Contains(out, `<THE-VALUE><xhtml:p>hi</xhtml:p></THE-VALUE>`) {
		t.Errorf("rich text not written verbatim:\n%s", out)
	}

	back := readString(t, out)
	got := back.CoreContent.LookupSpecObject("O").Values()[0].(*AttributeValueXHTML)
	if got.TheValue != v.TheValue || got.PlainText() != "hi" {
		t.Errorf("TheValue = %q", got.TheValue)
	}
}

func TestWriteCompact(t *testing.T) {
	doc := NewReqIF()
	doc.TheHeader.Identifier = "H"
	doc.TheHeader.Title = "a < b"

	var buf bytes.Buffer
	if err := NewCodec(Options{Compact: true}).Write(&buf, doc); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?><REQ-IF xmlns="` + Namespace + `">` +
		`<THE-HEADER><REQ-IF-HEADER IDENTIFIER="H"><TITLE>a &lt; b</TITLE></REQ-IF-HEADER></THE-HEADER>` +
		`<CORE-CONTENT><REQ-IF-CONTENT/></CORE-CONTENT></REQ-IF>`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteNilDocument(t *testing.T) {
	err := NewCodec(Options{}).Write(&bytes.Buffer{}, nil)
	if !errors.Is(err, errors.ErrSerialization) {
		t.Errorf("Write(nil) error = %v, want ErrSerialization", err)
	}
}

func TestWriteStandInWithoutTypeFails(t *testing.T) {
	doc := readString(t, minimal(`
<SPEC-TYPES><SPEC-RELATION-TYPE IDENTIFIER="RT"/></SPEC-TYPES>
<SPEC-RELATIONS>
  <SPEC-RELATION IDENTIFIER="R">
    <SOURCE><SPEC-OBJECT-REF>GHOST</SPEC-OBJECT-REF></SOURCE>
    <TARGET><SPEC-OBJECT-REF>GHOST</SPEC-OBJECT-REF></TARGET>
    <TYPE><SPEC-RELATION-TYPE-REF>RT</SPEC-RELATION-TYPE-REF></TYPE>
  </SPEC-RELATION>
</SPEC-RELATIONS>`))
	rel := doc.CoreContent.LookupSpecRelation("R")
	if rel.Source != rel.Target {
		t.Error("one stand-in must serve both endpoints")
	}

	err := NewCodec(Options{}).Write(&bytes.Buffer{}, doc)
	var se *errors.SerializationError
	if !errors.As(err, &se) || se.Identifier != "GHOST" || se.Missing != "Type" {
		t.Errorf("Write() error = %v, want stand-in missing Type", err)
	}
}
