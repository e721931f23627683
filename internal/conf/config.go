package conf

import (
	"fmt"
)

type Bootstrap struct {
	Server       *Server       `yaml:"server" json:"server"`
	Data         *Data         `yaml:"data" json:"data"`
	Gamification *Gamification `yaml:"gamification" json:"gamification"`
	Log          *Log          `yaml:"log" json:"log"`
}

type Server struct {
	Http struct {
		Addr    string `yaml:"addr" json:"addr"`
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`
}

type Data struct {
	Database struct {
		Driver          string `yaml:"driver" json:"driver"`
		Source          string `yaml:"source" json:"source"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	} `yaml:"database" json:"database"`
	Redis struct {
		Addr         string `yaml:"addr" json:"addr"`
		Password     string `yaml:"password" json:"password"`
		Db           int32  `yaml:"db" json:"db"`
		ReadTimeout  string `yaml:"read_timeout" json:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout" json:"write_timeout"`
		DialTimeout  string `yaml:"dial_timeout" json:"dial_timeout"`
		PoolSize     int32  `yaml:"pool_size" json:"pool_size"`
		MinIdleConns int32  `yaml:"min_idle_conns" json:"min_idle_conns"`
	} `yaml:"redis" json:"redis"`
}

// Gamification 进度系统配置
type Gamification struct {
	// BaseActionXP 每次完成分析的基础经验值
	BaseActionXP int64 `yaml:"base_action_xp" json:"base_action_xp"`
	// DefaultPlanID 用户记录缺失套餐时的兜底套餐
	DefaultPlanID string `yaml:"default_plan_id" json:"default_plan_id"`
}

type Log struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	Output     string `yaml:"output" json:"output"`
	FilePath   string `yaml:"file_path" json:"file_path"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Validate validates the configuration
func (b *Bootstrap) Validate() error {
	if b.Server == nil {
		return fmt.Errorf("server configuration is required")
	}
	if b.Server.Http.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if b.Data == nil {
		return fmt.Errorf("data configuration is required")
	}
	if b.Data.Database.Source == "" {
		return fmt.Errorf("data.database.source is required")
	}
	if b.Data.Redis.Addr == "" {
		return fmt.Errorf("data.redis.addr is required")
	}
	if b.Gamification != nil && b.Gamification.BaseActionXP < 0 {
		return fmt.Errorf("gamification.base_action_xp must not be negative")
	}
	if b.Log == nil {
		return fmt.Errorf("log configuration is required")
	}
	return nil
}

// BaseActionXP 返回每次动作的基础经验值, 未配置时使用默认值
func (b *Bootstrap) BaseActionXP() int64 {
	if b.Gamification == nil || b.Gamification.BaseActionXP == 0 {
		return 10
	}
	return b.Gamification.BaseActionXP
}

// DefaultPlanID 返回兜底套餐ID, 未配置时为 free
func (b *Bootstrap) DefaultPlanID() string {
	if b.Gamification == nil || b.Gamification.DefaultPlanID == "" {
		return "free"
	}
	return b.Gamification.DefaultPlanID
}
