// publish copies the static site into the publish directory.
package main

import (
	"flag"
	"log"
	"os"
	"path"

	"github.com/alphaquiz/monthlyquiz/internal/storage"
)

var filesToCopy = []string{
	"index.html", "login.html", "courses.html", "learn.html", "instructors.html",
	"community.html", "about.html", "notices.html", "ai.html", "contact.html",
	"exams.html", "data.js", "MonthlyQuizExam/style.css",
}

var dirsToCopy = []string{"api", "Company_disipline", "MonthlyQuizExam", "Safety"}

func main() {
	src := flag.String("src", ".", "site source directory")
	out := flag.String("out", "public", "publish directory")
	flag.Parse()

	srcStore, err := storage.NewFSStore(*src)
	if err != nil {
		log.Fatalf("source dir: %v", err)
	}
	dst, err := storage.NewFSStore(*out)
	if err != nil {
		log.Fatalf("publish dir: %v", err)
	}

	for _, file := range filesToCopy {
		// top-level files land flat
		if err := copyKey(srcStore, dst, file, path.Base(file)); err != nil {
			log.Fatalf("copy %s: %v", file, err)
		}
	}
	for _, dir := range dirsToCopy {
		keys, err := srcStore.List(dir)
		if err != nil {
			log.Fatalf("list %s/: %v", dir, err)
		}
		for _, key := range keys {
			if err := copyKey(srcStore, dst, key, key); err != nil {
				log.Fatalf("copy %s: %v", key, err)
			}
		}
	}
	log.Println("Build completed successfully!")
}

func copyKey(src, dst *storage.FSStore, from, to string) error {
	rc, err := src.Get(from)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer rc.Close()
	_, err = dst.Put(to, rc)
	return err
}
