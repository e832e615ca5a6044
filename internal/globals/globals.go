package globals

const MAX_CHANNEL = 255
const MAX_DISTANCE = 3 * MAX_CHANNEL
const MAX_SWATCH_WIDTH = 80

const NAME_COLUMN = "color_name"
const RED_COLUMN = "R"
const GREEN_COLUMN = "G"
const BLUE_COLUMN = "B"

const S3_SCHEME = "s3://"
const QUIT_COMMAND = "q"

var PALETTE_COLUMNS = []string{NAME_COLUMN, RED_COLUMN, GREEN_COLUMN, BLUE_COLUMN}
var LOG_MODES = []string{"local", "cloudwatch", "both"}
var IMAGE_EXTENSIONS = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
