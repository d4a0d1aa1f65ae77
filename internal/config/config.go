package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

var cfg *koanf.Koanf

const (
	CMD              = "cmd"
	LOG_LEVEL        = "log.level"
	CLICKUP_TOKEN    = "clickup.token"
	CLICKUP_LISTID   = "clickup.listid"
	TASK_NAME        = "task.name"
	TASK_DESCRIPTION = "task.description"
	TASK_PRIORITY    = "task.priority"
	TASK_DUE         = "task.due"
	WATCH_TASKID     = "watch.taskid"
	WATCH_CRON       = "watch.cron"
)

func Gist() *koanf.Koanf {
	if cfg == nil {
		ini()
	}
	return cfg
}

func Sprint() string {
	sb := strings.Builder{}
	sb.WriteString("cmd|required|-\n")
	sb.WriteString("log_level|optional|info\n")
	sb.WriteString("clickup_token|required|-\n")
	sb.WriteString("clickup_listid|required|-\n")
	sb.WriteString("task_name|optional|-\n")
	sb.WriteString("task_description|optional|-\n")
	sb.WriteString("task_priority|optional|-\n")
	sb.WriteString("task_due|optional|-\n")
	sb.WriteString("watch_taskid|optional|-\n")
	sb.WriteString("watch_cron|optional|0 */5 * * * * *\n")
	return sb.String()
}

func ini() {
	cfg = koanf.New(".")
	cfg.Set(LOG_LEVEL, "info")

	f := flag.NewFlagSet("config", flag.ContinueOnError)
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}

	f.String(CMD, "", "application run mode")
	f.String(LOG_LEVEL, "info", "log level")
	f.String(CLICKUP_TOKEN, "", "clickup api token")
	f.String(CLICKUP_LISTID, "", "clickup list id")
	f.String(TASK_NAME, "", "task name")
	f.String(TASK_DESCRIPTION, "", "task description")
	f.Int(TASK_PRIORITY, 0, "task priority")
	f.Int64(TASK_DUE, 0, "task due date, unix millis")
	f.String(WATCH_TASKID, "", "task id to watch")
	f.String(WATCH_CRON, "0 */5 * * * * *", "watch schedule")
	f.Parse(os.Args[1:])
	if err := cfg.Load(posflag.Provider(f, ".", cfg), nil); err != nil {
		log.Panic().Err(err).Msg("error loading config")
	}
	lvl, err := zerolog.ParseLevel(cfg.String(LOG_LEVEL))
	if err != nil {
		log.Panic().Err(err).Msg("error parsing log level")
	}
	zerolog.SetGlobalLevel(lvl)

	printCfg()
}

func printCfg() {
	log.Debug().Msgf("cmd: %s", cfg.String(CMD))
	log.Debug().Msgf("log_level: %s", cfg.String(LOG_LEVEL))
	log.Debug().Msgf("clickup_listid: %s", cfg.String(CLICKUP_LISTID))
	log.Debug().Msgf("task_name: %s", cfg.String(TASK_NAME))
	log.Debug().Msgf("watch_taskid: %s", cfg.String(WATCH_TASKID))
	log.Debug().Msgf("watch_cron: %s", cfg.String(WATCH_CRON))
}
