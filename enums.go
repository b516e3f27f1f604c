package gslides

// Enumerated wire values are open string types: the vendor schema adds
// literals independently of this library, so unknown values decode and
// re-encode verbatim instead of failing or collapsing to a sentinel.

// Unit is a length unit. The API stores lengths in English Metric Units and
// accepts points in requests.
type Unit string

const (
	UnitUnspecified Unit = "UNIT_UNSPECIFIED"
	UnitEMU         Unit = "EMU"
	UnitPT          Unit = "PT"
)

// PageType distinguishes the polymorphic Page variants. Slides omit the tag
// on the wire; an empty PageType means a slide.
type PageType string

const (
	PageTypeSlide       PageType = "SLIDE"
	PageTypeMaster      PageType = "MASTER"
	PageTypeLayout      PageType = "LAYOUT"
	PageTypeNotes       PageType = "NOTES"
	PageTypeNotesMaster PageType = "NOTES_MASTER"
)

// PredefinedLayout names the layouts every theme ships with.
type PredefinedLayout string

const (
	PredefinedLayoutUnspecified   PredefinedLayout = "PREDEFINED_LAYOUT_UNSPECIFIED"
	LayoutBlank                   PredefinedLayout = "BLANK"
	LayoutCaptionOnly             PredefinedLayout = "CAPTION_ONLY"
	LayoutTitle                   PredefinedLayout = "TITLE"
	LayoutTitleAndBody            PredefinedLayout = "TITLE_AND_BODY"
	LayoutTitleAndTwoColumns      PredefinedLayout = "TITLE_AND_TWO_COLUMNS"
	LayoutTitleOnly               PredefinedLayout = "TITLE_ONLY"
	LayoutSectionHeader           PredefinedLayout = "SECTION_HEADER"
	LayoutSectionTitleDescription PredefinedLayout = "SECTION_TITLE_AND_DESCRIPTION"
	LayoutOneColumnText           PredefinedLayout = "ONE_COLUMN_TEXT"
	LayoutMainPoint               PredefinedLayout = "MAIN_POINT"
	LayoutBigNumber               PredefinedLayout = "BIG_NUMBER"
)

// ShapeType names the predefined shape geometries. The API defines well over
// a hundred; the constants below cover the ones this library constructs
// itself. Any other literal still round-trips.
type ShapeType string

const (
	ShapeTypeUnspecified    ShapeType = "TYPE_UNSPECIFIED"
	ShapeTextBox            ShapeType = "TEXT_BOX"
	ShapeRectangle          ShapeType = "RECTANGLE"
	ShapeRoundRectangle     ShapeType = "ROUND_RECTANGLE"
	ShapeEllipse            ShapeType = "ELLIPSE"
	ShapeDiamond            ShapeType = "DIAMOND"
	ShapeTriangle           ShapeType = "TRIANGLE"
	ShapeRightArrow         ShapeType = "RIGHT_ARROW"
	ShapeLeftArrow          ShapeType = "LEFT_ARROW"
	ShapeArc                ShapeType = "ARC"
	ShapeCloud              ShapeType = "CLOUD"
	ShapeStar5              ShapeType = "STAR_5"
	ShapeHomePlate          ShapeType = "HOME_PLATE"
	ShapeRoundedRectCallout ShapeType = "WEDGE_ROUND_RECTANGLE_CALLOUT"
)

// PlaceholderType identifies the layout slot a shape inherits from.
type PlaceholderType string

const (
	PlaceholderNone          PlaceholderType = "NONE"
	PlaceholderBody          PlaceholderType = "BODY"
	PlaceholderChart         PlaceholderType = "CHART"
	PlaceholderClipArt       PlaceholderType = "CLIP_ART"
	PlaceholderCenteredTitle PlaceholderType = "CENTERED_TITLE"
	PlaceholderDiagram       PlaceholderType = "DIAGRAM"
	PlaceholderDateAndTime   PlaceholderType = "DATE_AND_TIME"
	PlaceholderFooter        PlaceholderType = "FOOTER"
	PlaceholderHeader        PlaceholderType = "HEADER"
	PlaceholderMedia         PlaceholderType = "MEDIA"
	PlaceholderObject        PlaceholderType = "OBJECT"
	PlaceholderPicture       PlaceholderType = "PICTURE"
	PlaceholderSlideNumber   PlaceholderType = "SLIDE_NUMBER"
	PlaceholderSubtitle      PlaceholderType = "SUBTITLE"
	PlaceholderTable         PlaceholderType = "TABLE"
	PlaceholderTitle         PlaceholderType = "TITLE"
	PlaceholderSlideImage    PlaceholderType = "SLIDE_IMAGE"
)

// ThemeColorType names a slot in a page's color scheme.
type ThemeColorType string

const (
	ThemeColorUnspecified       ThemeColorType = "THEME_COLOR_TYPE_UNSPECIFIED"
	ThemeColorDark1             ThemeColorType = "DARK1"
	ThemeColorLight1            ThemeColorType = "LIGHT1"
	ThemeColorDark2             ThemeColorType = "DARK2"
	ThemeColorLight2            ThemeColorType = "LIGHT2"
	ThemeColorAccent1           ThemeColorType = "ACCENT1"
	ThemeColorAccent2           ThemeColorType = "ACCENT2"
	ThemeColorAccent3           ThemeColorType = "ACCENT3"
	ThemeColorAccent4           ThemeColorType = "ACCENT4"
	ThemeColorAccent5           ThemeColorType = "ACCENT5"
	ThemeColorAccent6           ThemeColorType = "ACCENT6"
	ThemeColorHyperlink         ThemeColorType = "HYPERLINK"
	ThemeColorFollowedHyperlink ThemeColorType = "FOLLOWED_HYPERLINK"
	ThemeColorText1             ThemeColorType = "TEXT1"
	ThemeColorBackground1       ThemeColorType = "BACKGROUND1"
	ThemeColorText2             ThemeColorType = "TEXT2"
	ThemeColorBackground2       ThemeColorType = "BACKGROUND2"
)

// PropertyState tracks whether a property is rendered, suppressed, or
// inherited. It is server-computed on reads and must never be written back.
type PropertyState string

const (
	PropertyStateRendered    PropertyState = "RENDERED"
	PropertyStateNotRendered PropertyState = "NOT_RENDERED"
	PropertyStateInherit     PropertyState = "INHERIT"
)

type DashStyle string

const (
	DashStyleSolid       DashStyle = "SOLID"
	DashStyleDot         DashStyle = "DOT"
	DashStyleDash        DashStyle = "DASH"
	DashStyleDashDot     DashStyle = "DASH_DOT"
	DashStyleLongDash    DashStyle = "LONG_DASH"
	DashStyleLongDashDot DashStyle = "LONG_DASH_DOT"
)

type ShadowType string

const ShadowTypeOuter ShadowType = "OUTER"

// RectanglePosition anchors a shadow relative to its element's bounds.
type RectanglePosition string

const (
	RectangleTopLeft      RectanglePosition = "TOP_LEFT"
	RectangleTopCenter    RectanglePosition = "TOP_CENTER"
	RectangleTopRight     RectanglePosition = "TOP_RIGHT"
	RectangleLeftCenter   RectanglePosition = "LEFT_CENTER"
	RectangleCenter       RectanglePosition = "CENTER"
	RectangleRightCenter  RectanglePosition = "RIGHT_CENTER"
	RectangleBottomLeft   RectanglePosition = "BOTTOM_LEFT"
	RectangleBottomCenter RectanglePosition = "BOTTOM_CENTER"
	RectangleBottomRight  RectanglePosition = "BOTTOM_RIGHT"
)

type ContentAlignment string

const (
	ContentAlignmentTop    ContentAlignment = "TOP"
	ContentAlignmentMiddle ContentAlignment = "MIDDLE"
	ContentAlignmentBottom ContentAlignment = "BOTTOM"
)

type AutofitType string

const (
	AutofitNone        AutofitType = "NONE"
	AutofitText        AutofitType = "TEXT_AUTOFIT"
	AutofitShape       AutofitType = "SHAPE_AUTOFIT"
	AutofitUnspecified AutofitType = "AUTOFIT_TYPE_UNSPECIFIED"
)

type BaselineOffset string

const (
	BaselineOffsetNone        BaselineOffset = "NONE"
	BaselineOffsetSuperscript BaselineOffset = "SUPERSCRIPT"
	BaselineOffsetSubscript   BaselineOffset = "SUBSCRIPT"
)

// Alignment is the paragraph-level horizontal alignment.
type Alignment string

const (
	AlignmentStart     Alignment = "START"
	AlignmentCenter    Alignment = "CENTER"
	AlignmentEnd       Alignment = "END"
	AlignmentJustified Alignment = "JUSTIFIED"
)

type TextDirection string

const (
	TextDirectionLeftToRight TextDirection = "LEFT_TO_RIGHT"
	TextDirectionRightToLeft TextDirection = "RIGHT_TO_LEFT"
)

type SpacingMode string

const (
	SpacingModeNeverCollapse SpacingMode = "NEVER_COLLAPSE"
	SpacingModeCollapseLists SpacingMode = "COLLAPSE_LISTS"
)

type AutoTextType string

const AutoTextSlideNumber AutoTextType = "SLIDE_NUMBER"

// VideoSourceType names the hosting service a video is embedded from.
type VideoSourceType string

const (
	VideoSourceYouTube VideoSourceType = "YOUTUBE"
	VideoSourceDrive   VideoSourceType = "DRIVE"
)

// LineCategory is the routing family used when creating a line.
type LineCategory string

const (
	LineCategoryStraight LineCategory = "STRAIGHT"
	LineCategoryBent     LineCategory = "BENT"
	LineCategoryCurved   LineCategory = "CURVED"
)

// LineType is the concrete connector geometry reported on reads.
type LineType string

const (
	LineTypeStraightConnector1 LineType = "STRAIGHT_CONNECTOR_1"
	LineTypeBentConnector2     LineType = "BENT_CONNECTOR_2"
	LineTypeBentConnector3     LineType = "BENT_CONNECTOR_3"
	LineTypeBentConnector4     LineType = "BENT_CONNECTOR_4"
	LineTypeBentConnector5     LineType = "BENT_CONNECTOR_5"
	LineTypeCurvedConnector2   LineType = "CURVED_CONNECTOR_2"
	LineTypeCurvedConnector3   LineType = "CURVED_CONNECTOR_3"
	LineTypeCurvedConnector4   LineType = "CURVED_CONNECTOR_4"
	LineTypeCurvedConnector5   LineType = "CURVED_CONNECTOR_5"
	LineTypeStraightLine       LineType = "STRAIGHT_LINE"
)

type ArrowStyle string

const (
	ArrowNone        ArrowStyle = "NONE"
	ArrowStealth     ArrowStyle = "STEALTH_ARROW"
	ArrowFill        ArrowStyle = "FILL_ARROW"
	ArrowFillCircle  ArrowStyle = "FILL_CIRCLE"
	ArrowFillSquare  ArrowStyle = "FILL_SQUARE"
	ArrowFillDiamond ArrowStyle = "FILL_DIAMOND"
	ArrowOpen        ArrowStyle = "OPEN_ARROW"
	ArrowOpenCircle  ArrowStyle = "OPEN_CIRCLE"
	ArrowOpenSquare  ArrowStyle = "OPEN_SQUARE"
	ArrowOpenDiamond ArrowStyle = "OPEN_DIAMOND"
)

type RecolorName string

const (
	RecolorGrayscale RecolorName = "GRAYSCALE"
	RecolorNegative  RecolorName = "NEGATIVE"
	RecolorSepia     RecolorName = "SEPIA"
	RecolorLight1    RecolorName = "LIGHT1"
	RecolorDark1     RecolorName = "DARK1"
)

type RelativeSlideLink string

const (
	LinkNextSlide     RelativeSlideLink = "NEXT_SLIDE"
	LinkPreviousSlide RelativeSlideLink = "PREVIOUS_SLIDE"
	LinkFirstSlide    RelativeSlideLink = "FIRST_SLIDE"
	LinkLastSlide     RelativeSlideLink = "LAST_SLIDE"
)

// RangeType scopes a text operation. Fixed ranges use UTF-16 code-unit
// offsets into the shape's flattened text.
type RangeType string

const (
	RangeTypeFixed          RangeType = "FIXED_RANGE"
	RangeTypeFromStartIndex RangeType = "FROM_START_INDEX"
	RangeTypeAll            RangeType = "ALL"
)

// BulletGlyphPreset selects the glyph sequence createParagraphBullets applies
// per nesting level.
type BulletGlyphPreset string

const (
	BulletDiscCircleSquare        BulletGlyphPreset = "BULLET_DISC_CIRCLE_SQUARE"
	BulletDiamondXArrow3DSquare   BulletGlyphPreset = "BULLET_DIAMONDX_ARROW3D_SQUARE"
	BulletCheckbox                BulletGlyphPreset = "BULLET_CHECKBOX"
	BulletArrowDiamondDisc        BulletGlyphPreset = "BULLET_ARROW_DIAMOND_DISC"
	BulletStarCircleSquare        BulletGlyphPreset = "BULLET_STAR_CIRCLE_SQUARE"
	BulletArrow3DCircleSquare     BulletGlyphPreset = "BULLET_ARROW3D_CIRCLE_SQUARE"
	BulletLeftTriangleDiamondDisc BulletGlyphPreset = "BULLET_LEFTTRIANGLE_DIAMOND_DISC"
	BulletDiamondCircleSquare     BulletGlyphPreset = "BULLET_DIAMOND_CIRCLE_SQUARE"
	NumberedDigitAlphaRoman       BulletGlyphPreset = "NUMBERED_DIGIT_ALPHA_ROMAN"
	NumberedDigitAlphaRomanParens BulletGlyphPreset = "NUMBERED_DIGIT_ALPHA_ROMAN_PARENS"
	NumberedDigitNested           BulletGlyphPreset = "NUMBERED_DIGIT_NESTED"
	NumberedUpperAlphaAlphaRoman  BulletGlyphPreset = "NUMBERED_UPPERALPHA_ALPHA_ROMAN"
	NumberedUpperRomanUpperAlpha  BulletGlyphPreset = "NUMBERED_UPPERROMAN_UPPERALPHA_DIGIT"
	NumberedZeroDigitAlphaRoman   BulletGlyphPreset = "NUMBERED_ZERODIGIT_ALPHA_ROMAN"
)

// LinkingMode controls whether a created sheets chart stays bound to its
// source spreadsheet.
type LinkingMode string

const (
	LinkingModeNotLinkedImage LinkingMode = "NOT_LINKED_IMAGE"
	LinkingModeLinked         LinkingMode = "LINKED"
)

// ImageReplaceMethod controls how replaceImage fits the new image.
type ImageReplaceMethod string

const (
	ImageReplaceCenterInside ImageReplaceMethod = "CENTER_INSIDE"
	ImageReplaceCenterCrop   ImageReplaceMethod = "CENTER_CROP"
)
